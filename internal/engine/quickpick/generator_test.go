package quickpick

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lototrack/ticket-engine-poc/internal/engine/game"
	"github.com/lototrack/ticket-engine-poc/internal/engine/ledger"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

var usa = track.Regions{USA: true}

func newTestGen(opts ...Option) *Generator {
	return New(rand.New(rand.NewSource(42)), opts...)
}

func TestQuickPickCountAndWidth(t *testing.T) {
	cases := []struct {
		mode  game.Mode
		width int
	}{
		{game.ModePulito, 2},
		{game.ModeVenezuela, 2},
		{game.ModeRDQuiniela, 2},
		{game.ModePick3, 3},
		{game.ModeWin4, 4},
	}
	for _, tc := range cases {
		g := newTestGen()
		if err := g.QuickPick(tc.mode, 5, Locks{}, usa); err != nil {
			t.Fatalf("%v: %v", tc.mode, err)
		}
		batch := g.Batch()
		if len(batch) != 5 {
			t.Fatalf("%v: len = %d, want 5", tc.mode, len(batch))
		}
		for _, p := range batch {
			if len(p.BetNumber) != tc.width {
				t.Errorf("%v: number %q, want width %d", tc.mode, p.BetNumber, tc.width)
			}
		}
	}
}

func TestQuickPickBounds(t *testing.T) {
	g := newTestGen()
	if err := g.QuickPick(game.ModePick3, 0, Locks{}, usa); !errors.Is(err, ErrBadCount) {
		t.Errorf("count 0 = %v, want ErrBadCount", err)
	}
	if err := g.QuickPick(game.ModePick3, 26, Locks{}, usa); !errors.Is(err, ErrBadCount) {
		t.Errorf("count 26 = %v, want ErrBadCount", err)
	}
	if err := g.QuickPick(game.ModePaleRD, 1, Locks{}, usa); !errors.Is(err, ErrModeNotDrawble) {
		t.Errorf("pale = %v, want ErrModeNotDrawble", err)
	}
}

func TestQuickPickLocks(t *testing.T) {
	g := newTestGen()
	locks := Locks{Straight: "1", Combo: "0.5", LockStraight: true}
	if err := g.QuickPick(game.ModePick3, 3, locks, usa); err != nil {
		t.Fatal(err)
	}

	batch := g.Batch()
	// straight travado persiste em todas; combo destravado só na primeira
	for i, p := range batch {
		if p.Straight != "1" {
			t.Errorf("play %d straight = %q, want locked \"1\"", i+1, p.Straight)
		}
	}
	if batch[0].Combo != "0.5" {
		t.Errorf("first combo = %q, want \"0.5\"", batch[0].Combo)
	}
	for _, p := range batch[1:] {
		if p.Combo != "" {
			t.Errorf("unlocked combo should reset, got %q", p.Combo)
		}
	}

	// cada jogada sai precificada
	for _, p := range batch {
		if p.Mode != game.ModePick3 {
			t.Errorf("mode = %v, want Pick 3", p.Mode)
		}
		if p.Total.LessThan(decimal.NewFromInt(1)) {
			t.Errorf("total = %s, want >= straight", p.Total)
		}
	}
}

func TestQuickPickDuplicateRejection(t *testing.T) {
	g := newTestGen(WithDuplicateRejection())
	if err := g.QuickPick(game.ModePulito, 25, Locks{}, usa); err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, p := range g.Batch() {
		if seen[p.BetNumber] {
			t.Fatalf("duplicate %q in batch", p.BetNumber)
		}
		seen[p.BetNumber] = true
	}
}

func TestPermuteConservesDigits(t *testing.T) {
	g := newTestGen()
	if err := g.QuickPick(game.ModePick3, 4, Locks{Straight: "1", LockStraight: true}, usa); err != nil {
		t.Fatal(err)
	}
	if err := g.QuickPick(game.ModeWin4, 2, Locks{}, usa); err != nil {
		t.Fatal(err)
	}

	before := g.Batch()
	widths := make([]int, len(before))
	var beforeDigits []byte
	for i, p := range before {
		widths[i] = len(p.BetNumber)
		beforeDigits = append(beforeDigits, p.BetNumber...)
	}

	g.Permute(usa)

	after := g.Batch()
	var afterDigits []byte
	for i, p := range after {
		if len(p.BetNumber) != widths[i] {
			t.Errorf("play %d width changed: %q", i+1, p.BetNumber)
		}
		if p.Mode == game.ModeInvalid {
			t.Errorf("play %d not reclassified: %q", i+1, p.BetNumber)
		}
		afterDigits = append(afterDigits, p.BetNumber...)
	}

	sortBytes(beforeDigits)
	sortBytes(afterDigits)
	if string(beforeDigits) != string(afterDigits) {
		t.Errorf("digit multiset changed: %s -> %s", beforeDigits, afterDigits)
	}
}

func TestPermuteKeepsPaleShape(t *testing.T) {
	g := newTestGen()
	sd := track.Regions{SantoDomingo: true}
	g.batch = append(g.batch, &ledger.Play{
		Position: 1,
		Fields:   ledger.Fields{BetNumber: "23-45", Straight: "1"},
	})
	g.batch = append(g.batch, &ledger.Play{
		Position: 2,
		Fields:   ledger.Fields{BetNumber: "67", Straight: "1"},
	})

	g.Permute(sd)

	p := g.Batch()[0]
	if len(p.BetNumber) != 5 || p.BetNumber[2] != '-' {
		t.Errorf("pale shape lost: %q", p.BetNumber)
	}
	if p.Mode != game.ModePaleRD {
		t.Errorf("mode = %v, want Pale-RD", p.Mode)
	}
}

func TestCommitToTruncates(t *testing.T) {
	g := newTestGen()
	l := ledger.New()
	for i := 0; i < 20; i++ {
		if _, err := l.Add(ledger.Fields{BetNumber: "123"}, usa); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.QuickPick(game.ModePick3, 10, Locks{}, usa); err != nil {
		t.Fatal(err)
	}

	added, truncated := g.CommitTo(l, usa)
	if added != 5 || truncated != 5 {
		t.Errorf("CommitTo = (%d,%d), want (5,5)", added, truncated)
	}
	if l.Len() != ledger.MaxPlays {
		t.Errorf("ledger len = %d, want %d", l.Len(), ledger.MaxPlays)
	}
	if len(g.Batch()) != 0 {
		t.Error("batch should clear after commit")
	}
}

func sortBytes(b []byte) {
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
}
