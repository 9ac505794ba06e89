package quickpick

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lototrack/ticket-engine-poc/internal/engine/game"
	"github.com/lototrack/ticket-engine-poc/internal/engine/ledger"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

// MaxBatch limita uma geração rápida a 25 jogadas, o mesmo teto do bilhete.
const MaxBatch = 25

var (
	ErrBadCount       = errors.New("quick pick count must be between 1 and 25")
	ErrModeNotDrawble = errors.New("mode has no fixed digit length to draw")
)

// Locks define quais campos de aposta ficam travados entre iterações da
// geração rápida. Campos destravados voltam a vazio depois de cada jogada.
type Locks struct {
	Straight     string
	Box          string
	Combo        string
	LockStraight bool
	LockBox      bool
	LockCombo    bool
}

// Generator produz jogadas candidatas num lote de preparação, separado do
// bilhete principal. O gerador recebe a fonte de aleatoriedade para que os
// testes fixem a semente.
type Generator struct {
	rng              *rand.Rand
	rejectDuplicates bool
	batch            []*ledger.Play
}

// Option configura o gerador.
type Option func(*Generator)

// WithDuplicateRejection faz a geração rápida redesenhar números que já
// saíram no mesmo lote. Desligado por padrão.
func WithDuplicateRejection() Option {
	return func(g *Generator) { g.rejectDuplicates = true }
}

// New cria um gerador com a fonte de aleatoriedade dada.
func New(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{rng: rng}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Load substitui o lote de preparação por jogadas vindas de fora (linhas
// digitadas ou importadas). Cada uma passa pela mesma classificação e
// precificação das geradas aqui; a origem não muda nada.
func (g *Generator) Load(rows []ledger.Fields, active track.Regions) {
	g.batch = nil
	for i, f := range rows {
		p := &ledger.Play{Position: i + 1, Fields: f}
		p.Mode = game.Classify(f.BetNumber, active)
		p.Total = game.Price(f.BetNumber, p.Mode, f.Straight, f.Box, f.Combo)
		g.batch = append(g.batch, p)
	}
}

// Batch retorna o lote de preparação corrente.
func (g *Generator) Batch() []*ledger.Play {
	return append([]*ledger.Play(nil), g.batch...)
}

// Clear esvazia o lote de preparação.
func (g *Generator) Clear() { g.batch = nil }

// digitLen é a largura de número implicada pela modalidade.
func digitLen(mode game.Mode) (int, error) {
	switch mode {
	case game.ModePulito, game.ModeVenezuela, game.ModeRDQuiniela:
		return 2, nil
	case game.ModePick3:
		return 3, nil
	case game.ModeWin4:
		return 4, nil
	default:
		return 0, ErrModeNotDrawble
	}
}

// QuickPick sorteia count números uniformes na faixa da modalidade
// (2 dígitos -> [0,99], 3 -> [0,999], 4 -> [0,9999]), com zeros à
// esquerda, e acrescenta cada um ao lote já classificado e precificado.
// Os valores travados persistem em todas as jogadas; os destravados valem
// só para a primeira.
func (g *Generator) QuickPick(mode game.Mode, count int, locks Locks, active track.Regions) error {
	if count < 1 || count > MaxBatch {
		return ErrBadCount
	}
	width, err := digitLen(mode)
	if err != nil {
		return err
	}
	limit := 1
	for i := 0; i < width; i++ {
		limit *= 10
	}

	seen := make(map[string]bool, len(g.batch))
	if g.rejectDuplicates {
		for _, p := range g.batch {
			seen[p.BetNumber] = true
		}
	}

	straight, box, combo := locks.Straight, locks.Box, locks.Combo
	for i := 0; i < count; i++ {
		number := fmt.Sprintf("%0*d", width, g.rng.Intn(limit))
		if g.rejectDuplicates {
			// redesenha até sair número inédito; com faixa mínima de 100
			// e lote máximo de 25 o laço sempre termina
			for seen[number] {
				number = fmt.Sprintf("%0*d", width, g.rng.Intn(limit))
			}
			seen[number] = true
		}

		p := &ledger.Play{
			Position: len(g.batch) + 1,
			Fields: ledger.Fields{
				BetNumber: number,
				Straight:  straight,
				Box:       box,
				Combo:     combo,
			},
		}
		p.Mode = game.Classify(number, active)
		p.Total = game.Price(number, p.Mode, straight, box, combo)
		g.batch = append(g.batch, p)

		if !locks.LockStraight {
			straight = ""
		}
		if !locks.LockBox {
			box = ""
		}
		if !locks.LockCombo {
			combo = ""
		}
	}
	return nil
}
