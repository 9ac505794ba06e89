package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lototrack/ticket-engine-poc/internal/engine/game"
	"github.com/lototrack/ticket-engine-poc/internal/engine/ledger"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

// Draft é o retrato do bilhete no momento da submissão: jogadas, datas,
// sorteios e total geral. Vive só até a confirmação ou o descarte.
type Draft struct {
	ID     string
	Plays  []ledger.Play
	Dates  []time.Time
	Tracks []string
	Total  decimal.Decimal

	confirmed bool
}

// Finalized é o bilhete confirmado: rascunho + número único + carimbo de
// confirmação. Imutável depois de criado; o número nunca é reutilizado.
type Finalized struct {
	Number      int64
	Draft       Draft
	ConfirmedAt time.Time
}

// Sequence entrega números únicos de bilhete. Em produção é o contador no
// Redis; nos testes, um contador em memória.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// Assembler valida o bilhete inteiro contra o corte e as regras de aposta
// mínima e produz o rascunho e o bilhete final.
type Assembler struct {
	catalog *track.Catalog
	seq     Sequence
	now     func() time.Time
}

// NewAssembler cria o montador. now é injetável para os testes fixarem o
// relógio; nil usa time.Now.
func NewAssembler(catalog *track.Catalog, seq Sequence, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{catalog: catalog, seq: seq, now: now}
}

// Assemble valida o bilhete completo e devolve um rascunho pronto para
// confirmação. Os erros de validação são acumulados, nunca interrompem na
// primeira linha reprovada.
func (a *Assembler) Assemble(l *ledger.Ledger, dates []time.Time, tracks []string, now time.Time) (*Draft, error) {
	if len(dates) == 0 || len(tracks) == 0 {
		return nil, ErrMissingSelection
	}

	// Com o dia corrente na seleção, o corte é reavaliado na hora da
	// submissão; a primeira pista fechada derruba o bilhete inteiro.
	if containsDay(dates, now) {
		for _, name := range tracks {
			t, ok := a.catalog.Lookup(name)
			if !ok {
				continue
			}
			if track.CutoffState(t, dates, now) == track.StateClosedForToday {
				return nil, &TrackClosedError{Track: name}
			}
		}
	}

	required := a.requiredDigits(tracks)
	reasons := make(map[int]string)
	for _, p := range l.Plays() {
		if reason := validatePlay(p, required); reason != "" {
			reasons[p.Position] = reason
		}
	}
	if len(reasons) > 0 {
		return nil, &InvalidPlaysError{Reasons: reasons}
	}

	plays := make([]ledger.Play, 0, l.Len())
	for _, p := range l.Plays() {
		plays = append(plays, *p)
	}
	return &Draft{
		ID:     uuid.NewString(),
		Plays:  plays,
		Dates:  append([]time.Time(nil), dates...),
		Tracks: append([]string(nil), tracks...),
		Total:  l.GrandTotal(a.catalog.NonVenezuelaCount(tracks), len(dates)),
	}, nil
}

// Confirm atribui o próximo número único e congela o bilhete. Cada
// rascunho confirma no máximo uma vez.
func (a *Assembler) Confirm(ctx context.Context, d *Draft) (*Finalized, error) {
	if d.confirmed {
		return nil, ErrAlreadyConfirmed
	}
	n, err := a.seq.Next(ctx)
	if err != nil {
		return nil, err
	}
	d.confirmed = true
	return &Finalized{
		Number:      n,
		Draft:       *d,
		ConfirmedAt: a.now(),
	}, nil
}

// requiredDigits retorna a largura fixa exigida pelos sorteios
// selecionados, 0 se nenhum exige.
func (a *Assembler) requiredDigits(tracks []string) int {
	for _, name := range tracks {
		if t, ok := a.catalog.Lookup(name); ok && t.RequiredDigits > 0 {
			return t.RequiredDigits
		}
	}
	return 0
}

// validatePlay aplica as regras por linha: número presente e
// classificável, largura fixa quando exigida e aposta mínima por
// modalidade.
func validatePlay(p *ledger.Play, requiredDigits int) string {
	if p.BetNumber == "" {
		return "bet number required"
	}
	if p.Mode == game.ModeInvalid {
		return "bet number not playable on the selected tracks"
	}
	if requiredDigits > 0 && len(game.Digits(p.BetNumber)) != requiredDigits {
		return "selected tracks take a fixed digit length"
	}

	st := game.ParseAmount(p.Straight)
	switch p.Mode {
	case game.ModeVenezuela, game.ModePaleVen, game.ModeRDQuiniela, game.ModePaleRD:
		if !st.IsPositive() {
			return "straight amount required"
		}
	case game.ModePulito:
		if !st.IsPositive() {
			return "straight amount required"
		}
		if p.Total.IsZero() {
			return "position list required"
		}
	case game.ModeWin4, game.ModePick3:
		bx := game.ParseAmount(p.Box)
		cb := game.ParseAmount(p.Combo)
		if !st.IsPositive() && !bx.IsPositive() && !cb.IsPositive() {
			return "at least one wager amount required"
		}
	}
	return ""
}

func containsDay(dates []time.Time, day time.Time) bool {
	y, m, d := day.Date()
	for _, dt := range dates {
		dy, dm, dd := dt.Date()
		if dy == y && dm == m && dd == d {
			return true
		}
	}
	return false
}
