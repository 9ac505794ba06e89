package dto

import "time"

type PlayResponse struct {
	Position  int    `json:"position"`
	BetNumber string `json:"bet_number"`
	GameMode  string `json:"game_mode"`
	Straight  string `json:"straight,omitempty"`
	Box       string `json:"box,omitempty"`
	Combo     string `json:"combo,omitempty"`
	Total     string `json:"total"`
}

type ClassifyResponse struct {
	BetNumber string `json:"bet_number"`
	GameMode  string `json:"game_mode"`
}

type PriceResponse struct {
	BetNumber string `json:"bet_number"`
	GameMode  string `json:"game_mode"`
	Total     string `json:"total"`
}

type QuickPickResponse struct {
	Plays []PlayResponse `json:"plays"`
}

type PermuteResponse struct {
	Plays []PlayResponse `json:"plays"`
}

type TrackStatusResponse struct {
	Name           string `json:"name"`
	Region         string `json:"region"`
	Close          string `json:"close,omitempty"`
	RequiredDigits int    `json:"required_digits,omitempty"`
	State          string `json:"state"`
}

type TracksResponse struct {
	Tracks []TrackStatusResponse `json:"tracks"`
}

// DraftResponse é o retrato validado do bilhete antes da confirmação.
// Duplicates lista posições com número repetido; é aviso, não erro.
type DraftResponse struct {
	DraftID    string         `json:"draft_id"`
	Plays      []PlayResponse `json:"plays"`
	Dates      []string       `json:"dates"`
	Tracks     []string       `json:"tracks"`
	GrandTotal string         `json:"grand_total"`
	Duplicates []int          `json:"duplicates,omitempty"`
}

type TicketResponse struct {
	TicketNumber int64          `json:"ticket_number"`
	DraftID      string         `json:"draft_id"`
	Plays        []PlayResponse `json:"plays"`
	Dates        []string       `json:"dates"`
	Tracks       []string       `json:"tracks"`
	GrandTotal   string         `json:"grand_total"`
	ConfirmedAt  time.Time      `json:"confirmed_at"`
}

// ErrorResponse padroniza as falhas de validação para a interface
// destacar tudo de uma vez.
type ErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code"`
	Track     string         `json:"track,omitempty"`
	Positions []int          `json:"positions,omitempty"`
	Reasons   map[int]string `json:"reasons,omitempty"`
}
