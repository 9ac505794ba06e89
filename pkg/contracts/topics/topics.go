package topics

const (
	// Bilhetes
	TicketFinalized = "ticket_finalized"

	// DLQs
	TicketFinalizedDLQ = "ticket_finalized_dlq"
)
