package events

import "time"

// PlayLine é uma jogada do bilhete como entra no evento.
type PlayLine struct {
	Position  int    `json:"position"`
	BetNumber string `json:"bet_number"`
	GameMode  string `json:"game_mode"`
	Straight  string `json:"straight,omitempty"`
	Box       string `json:"box,omitempty"`
	Combo     string `json:"combo,omitempty"`
	Total     string `json:"total"` // decimal com 2 casas
}

// Evento publicado no tópico "ticket_finalized" quando um bilhete é
// confirmado. Colaboradores externos (arquivo, impressão, espelho remoto)
// consomem daqui; o motor nunca espera por eles.
type TicketFinalized struct {
	TicketNumber int64      `json:"ticket_number"`
	DraftID      string     `json:"draft_id"`
	Dates        []string   `json:"dates"` // "2006-01-02"
	Tracks       []string   `json:"tracks"`
	Plays        []PlayLine `json:"plays"`
	GrandTotal   string     `json:"grand_total"`
	ConfirmedAt  time.Time  `json:"confirmed_at"`
}
