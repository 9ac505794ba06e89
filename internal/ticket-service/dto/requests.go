package dto

// PlayFields é uma linha do bilhete como o cliente digita. O servidor
// reclassifica e reprecifica sempre; totais vindos do cliente são ignorados.
type PlayFields struct {
	BetNumber string `json:"bet_number"`
	Straight  string `json:"straight,omitempty"`
	Box       string `json:"box,omitempty"` // em Pulito, lista de posições "1,2,3"
	Combo     string `json:"combo,omitempty"`
}

type ClassifyRequest struct {
	BetNumber string   `json:"bet_number"`
	Tracks    []string `json:"tracks"`
}

type PriceRequest struct {
	BetNumber string `json:"bet_number"`
	GameMode  string `json:"game_mode"`
	Straight  string `json:"straight,omitempty"`
	Box       string `json:"box,omitempty"`
	Combo     string `json:"combo,omitempty"`
}

type QuickPickRequest struct {
	GameMode string   `json:"game_mode"`
	Count    int      `json:"count"`
	Tracks   []string `json:"tracks"`

	Straight     string `json:"straight,omitempty"`
	Box          string `json:"box,omitempty"`
	Combo        string `json:"combo,omitempty"`
	LockStraight bool   `json:"lock_straight,omitempty"`
	LockBox      bool   `json:"lock_box,omitempty"`
	LockCombo    bool   `json:"lock_combo,omitempty"`
}

type PermuteRequest struct {
	Plays  []PlayFields `json:"plays"`
	Tracks []string     `json:"tracks"`
}

// TicketRequest serve tanto para validação quanto para emissão.
type TicketRequest struct {
	Plays  []PlayFields `json:"plays"`
	Dates  []string     `json:"dates"` // "2006-01-02"
	Tracks []string     `json:"tracks"`
}
