package quickpick

import (
	"github.com/lototrack/ticket-engine-poc/internal/engine/game"
	"github.com/lototrack/ticket-engine-poc/internal/engine/ledger"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

// Permute embaralha (Fisher-Yates) o multiconjunto de dígitos de todo o
// lote e redistribui fatias contíguas de volta a cada jogada, preservando
// a largura original de cada uma. O total de dígitos do lote é conservado;
// só muda a atribuição às linhas. Jogadas sem dígitos reconhecíveis ficam
// intocadas. Cada jogada afetada é reclassificada e reprecificada.
func (g *Generator) Permute(active track.Regions) {
	type slot struct {
		play *ledger.Play
		sep  byte // separador de pale ('-' ou 'x'), 0 para número simples
		n    int
	}

	var slots []slot
	var pool []byte
	for _, p := range g.batch {
		digits := game.Digits(p.BetNumber)
		if digits == "" {
			continue
		}
		var sep byte
		if len(p.BetNumber) == 5 {
			sep = p.BetNumber[2]
		}
		slots = append(slots, slot{play: p, sep: sep, n: len(digits)})
		pool = append(pool, digits...)
	}
	if len(pool) < 2 {
		return
	}

	for i := len(pool) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	off := 0
	for _, s := range slots {
		piece := pool[off : off+s.n]
		off += s.n
		if s.sep != 0 {
			s.play.BetNumber = string(piece[:2]) + string(s.sep) + string(piece[2:])
		} else {
			s.play.BetNumber = string(piece)
		}
		s.play.Mode = game.Classify(s.play.BetNumber, active)
		s.play.Total = game.Price(s.play.BetNumber, s.play.Mode, s.play.Straight, s.play.Box, s.play.Combo)
	}
}

// CommitTo transfere o lote de preparação para o bilhete principal,
// respeitando o teto de 25 jogadas. Retorna quantas entraram e quantas
// foram descartadas por falta de espaço; o lote é esvaziado ao final.
func (g *Generator) CommitTo(l *ledger.Ledger, active track.Regions) (added, truncated int) {
	for _, p := range g.batch {
		if _, err := l.Add(p.Fields, active); err != nil {
			truncated++
			continue
		}
		added++
	}
	g.Clear()
	return added, truncated
}
