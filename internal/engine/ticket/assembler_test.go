package ticket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lototrack/ticket-engine-poc/internal/engine/ledger"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

// memSequence é o contador em memória usado nos testes.
type memSequence struct{ n int64 }

func (s *memSequence) Next(ctx context.Context) (int64, error) {
	s.n++
	return s.n, nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
}

func newTestAssembler() (*Assembler, *memSequence) {
	seq := &memSequence{}
	return NewAssembler(track.NewCatalog(), seq, fixedNow), seq
}

func buildLedger(t *testing.T, active track.Regions, rows ...ledger.Fields) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	for _, f := range rows {
		if _, err := l.Add(f, active); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

var (
	usaRegions = track.Regions{USA: true}
	today      = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	tomorrow   = today.AddDate(0, 0, 1)
)

func TestAssembleMissingSelection(t *testing.T) {
	a, _ := newTestAssembler()
	l := buildLedger(t, usaRegions, ledger.Fields{BetNumber: "123", Straight: "1"})

	if _, err := a.Assemble(l, nil, []string{"New York Mid Day"}, fixedNow()); !errors.Is(err, ErrMissingSelection) {
		t.Errorf("no dates = %v, want ErrMissingSelection", err)
	}
	if _, err := a.Assemble(l, []time.Time{today}, nil, fixedNow()); !errors.Is(err, ErrMissingSelection) {
		t.Errorf("no tracks = %v, want ErrMissingSelection", err)
	}
}

func TestAssembleTrackClosed(t *testing.T) {
	a, _ := newTestAssembler()
	l := buildLedger(t, usaRegions, ledger.Fields{BetNumber: "123", Straight: "1"})

	// 15:00 de hoje: New York Mid Day (corte 14:10) já fechou
	late := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	_, err := a.Assemble(l, []time.Time{today}, []string{"New York Mid Day"}, late)

	var closed *TrackClosedError
	if !errors.As(err, &closed) {
		t.Fatalf("err = %v, want TrackClosedError", err)
	}
	if closed.Track != "New York Mid Day" {
		t.Errorf("closed track = %q", closed.Track)
	}

	// a mesma pista para amanhã passa
	if _, err := a.Assemble(l, []time.Time{tomorrow}, []string{"New York Mid Day"}, late); err != nil {
		t.Errorf("future date should pass cutoff: %v", err)
	}
}

func TestAssembleCollectsInvalidPlays(t *testing.T) {
	a, _ := newTestAssembler()
	l := buildLedger(t, usaRegions,
		ledger.Fields{BetNumber: "123", Straight: "1"}, // ok
		ledger.Fields{BetNumber: ""},                   // sem número
		ledger.Fields{BetNumber: "123"},                // sem valor apostado
		ledger.Fields{BetNumber: "12", Straight: "2"},  // pulito sem posições
	)

	_, err := a.Assemble(l, []time.Time{tomorrow}, []string{"New York Mid Day"}, fixedNow())

	var invalid *InvalidPlaysError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPlaysError", err)
	}
	got := invalid.Positions()
	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("positions = %v, want %v", got, want)
		}
	}
}

func TestAssembleFixedDigitTracks(t *testing.T) {
	a, _ := newTestAssembler()
	// Brooklyn exige 3 dígitos
	l := buildLedger(t, usaRegions,
		ledger.Fields{BetNumber: "123", Straight: "1"},
		ledger.Fields{BetNumber: "1234", Straight: "1"},
	)

	_, err := a.Assemble(l, []time.Time{tomorrow}, []string{"Brooklyn Midday"}, fixedNow())

	var invalid *InvalidPlaysError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPlaysError", err)
	}
	if got := invalid.Positions(); len(got) != 1 || got[0] != 2 {
		t.Errorf("positions = %v, want [2]", got)
	}
}

func TestAssembleQuinielaNeedsStraight(t *testing.T) {
	a, _ := newTestAssembler()
	sd := track.Regions{SantoDomingo: true}
	l := buildLedger(t, sd,
		ledger.Fields{BetNumber: "12", Box: "5"}, // quiniela sem straight
	)

	_, err := a.Assemble(l, []time.Time{tomorrow}, []string{"Nacional"}, fixedNow())
	var invalid *InvalidPlaysError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPlaysError", err)
	}
}

func TestAssembleAndConfirm(t *testing.T) {
	a, seq := newTestAssembler()
	l := buildLedger(t, usaRegions,
		ledger.Fields{BetNumber: "123", Straight: "2"},
		ledger.Fields{BetNumber: "4567", Combo: "0.25"},
	)

	dates := []time.Time{tomorrow, tomorrow.AddDate(0, 0, 1)}
	tracks := []string{"New York Mid Day", "Georgia Evening"}
	draft, err := a.Assemble(l, dates, tracks, fixedNow())
	if err != nil {
		t.Fatal(err)
	}
	if draft.ID == "" {
		t.Error("draft should carry an id")
	}
	// (2 + 0.25*24) * 2 pistas * 2 datas = 32
	if want := decimal.NewFromInt(32); !draft.Total.Equal(want) {
		t.Errorf("draft total = %s, want %s", draft.Total, want)
	}

	fin, err := a.Confirm(context.Background(), draft)
	if err != nil {
		t.Fatal(err)
	}
	if fin.Number != 1 {
		t.Errorf("ticket number = %d, want 1", fin.Number)
	}
	if !fin.ConfirmedAt.Equal(fixedNow()) {
		t.Errorf("confirmedAt = %v", fin.ConfirmedAt)
	}

	// confirmar de novo não pode reemitir número
	if _, err := a.Confirm(context.Background(), draft); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("second confirm = %v, want ErrAlreadyConfirmed", err)
	}
	if seq.n != 1 {
		t.Errorf("sequence advanced to %d, want 1", seq.n)
	}
}
