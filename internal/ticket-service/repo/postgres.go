package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Postgres implementa a persistência de bilhetes confirmados.
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de bilhetes.
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// CreateFinalized grava o bilhete e suas jogadas numa transação única.
// O número do bilhete vem do contador no Redis e já chega pronto.
func (p *Postgres) CreateFinalized(ctx context.Context, t *Ticket, plays []TicketPlay) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO tickets (id,ticket_number,draft_id,dates,tracks,grand_total,confirmed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, t.TicketNumber, t.DraftID, pq.Array(t.Dates), pq.Array(t.Tracks), t.GrandTotal, t.ConfirmedAt,
	)
	if err != nil {
		return "", err
	}

	for _, pl := range plays {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ticket_plays (id,ticket_id,position,bet_number,game_mode,straight,box,combo,total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			uuid.NewString(), id, pl.Position, pl.BetNumber, pl.GameMode, pl.Straight, pl.Box, pl.Combo, pl.Total,
		)
		if err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetByNumber retorna um bilhete confirmado e suas jogadas pelo número.
func (p *Postgres) GetByNumber(ctx context.Context, number int64) (*Ticket, []TicketPlay, error) {
	var t Ticket
	err := p.db.QueryRowContext(ctx, `
		SELECT id,ticket_number,draft_id,dates,tracks,grand_total,confirmed_at,created_at
		FROM tickets WHERE ticket_number=$1`, number,
	).Scan(&t.ID, &t.TicketNumber, &t.DraftID, pq.Array(&t.Dates), pq.Array(&t.Tracks), &t.GrandTotal, &t.ConfirmedAt, &t.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id,ticket_id,position,bet_number,game_mode,straight,box,combo,total
		FROM ticket_plays WHERE ticket_id=$1 ORDER BY position`, t.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var plays []TicketPlay
	for rows.Next() {
		var pl TicketPlay
		if err := rows.Scan(&pl.ID, &pl.TicketID, &pl.Position, &pl.BetNumber, &pl.GameMode, &pl.Straight, &pl.Box, &pl.Combo, &pl.Total); err != nil {
			return nil, nil, err
		}
		plays = append(plays, pl)
	}
	return &t, plays, rows.Err()
}
