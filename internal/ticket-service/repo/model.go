package repo

import "time"

// Ticket é o bilhete confirmado como persiste no Postgres.
type Ticket struct {
	ID           string
	TicketNumber int64
	DraftID      string
	Dates        []string
	Tracks       []string
	GrandTotal   string
	ConfirmedAt  time.Time
	CreatedAt    time.Time
}

// TicketPlay é uma jogada do bilhete persistido.
type TicketPlay struct {
	ID        string
	TicketID  string
	Position  int
	BetNumber string
	GameMode  string
	Straight  string
	Box       string
	Combo     string
	Total     string
}
