package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lototrack/ticket-engine-poc/internal/engine/game"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

// MaxPlays limita o bilhete a 25 jogadas.
const MaxPlays = 25

// ErrCapacityExceeded indica que o bilhete já tem 25 jogadas.
var ErrCapacityExceeded = errors.New("ledger capacity exceeded")

// Fields são os campos editáveis de uma jogada, como digitados.
// Em Pulito o Box carrega a lista de posições ("1,2,3").
type Fields struct {
	BetNumber string
	Straight  string
	Box       string
	Combo     string
}

// Play é uma linha do bilhete. Mode e Total são sempre derivados dos
// demais campos mais o conjunto de sorteios ativos; nunca são editados
// diretamente.
type Play struct {
	Position int
	Fields
	Mode  game.Mode
	Total decimal.Decimal
}

// Ledger é a lista ordenada de jogadas do bilhete em montagem.
// Dono único, sem sincronização própria.
type Ledger struct {
	plays []*Play
}

// New cria um bilhete vazio.
func New() *Ledger { return &Ledger{} }

// Len retorna a quantidade de jogadas.
func (l *Ledger) Len() int { return len(l.plays) }

// Plays retorna as jogadas na ordem do bilhete.
func (l *Ledger) Plays() []*Play {
	return append([]*Play(nil), l.plays...)
}

// Add acrescenta uma jogada, já classificada e precificada contra os
// mercados ativos. Falha com ErrCapacityExceeded no limite de 25.
func (l *Ledger) Add(f Fields, active track.Regions) (*Play, error) {
	if len(l.plays) >= MaxPlays {
		return nil, ErrCapacityExceeded
	}
	p := &Play{Position: len(l.plays) + 1, Fields: f}
	p.reprice(active)
	l.plays = append(l.plays, p)
	return p, nil
}

// Remove descarta a jogada na posição dada e renumera as restantes.
func (l *Ledger) Remove(position int) error {
	i := l.index(position)
	if i < 0 {
		return fmt.Errorf("no play at position %d", position)
	}
	l.plays = append(l.plays[:i], l.plays[i+1:]...)
	l.Renumber()
	return nil
}

// Update substitui os campos de uma jogada e a reclassifica/reprecifica.
func (l *Ledger) Update(position int, f Fields, active track.Regions) (*Play, error) {
	i := l.index(position)
	if i < 0 {
		return nil, fmt.Errorf("no play at position %d", position)
	}
	l.plays[i].Fields = f
	l.plays[i].reprice(active)
	return l.plays[i], nil
}

// Reprice reexecuta classificação e preço de todas as jogadas; deve ser
// chamada quando o conjunto de sorteios ativos muda.
func (l *Ledger) Reprice(active track.Regions) {
	for _, p := range l.plays {
		p.reprice(active)
	}
}

// Renumber compacta as posições para 1..N.
func (l *Ledger) Renumber() {
	for i, p := range l.plays {
		p.Position = i + 1
	}
}

// Duplicates retorna as posições que repetem um mesmo número apostado não
// vazio. É aviso para a interface; não bloqueia a submissão.
func (l *Ledger) Duplicates() []int {
	byNumber := make(map[string][]int)
	for _, p := range l.plays {
		if p.BetNumber == "" {
			continue
		}
		byNumber[p.BetNumber] = append(byNumber[p.BetNumber], p.Position)
	}
	var out []int
	for _, p := range l.plays {
		if len(byNumber[p.BetNumber]) > 1 {
			out = append(out, p.Position)
		}
	}
	return out
}

// GrandTotal soma os totais das jogadas e aplica os multiplicadores do
// bilhete: quantidade de sorteios fora da Venezuela (mínimo 1) vezes a
// quantidade de datas. Sem data selecionada o total é zero.
func (l *Ledger) GrandTotal(nonVenezuelaTracks, dateCount int) decimal.Decimal {
	if dateCount == 0 {
		return decimal.Zero.Round(2)
	}
	sum := decimal.Zero
	for _, p := range l.plays {
		sum = sum.Add(p.Total)
	}
	if nonVenezuelaTracks < 1 {
		nonVenezuelaTracks = 1
	}
	return sum.
		Mul(decimal.NewFromInt(int64(nonVenezuelaTracks))).
		Mul(decimal.NewFromInt(int64(dateCount))).
		Round(2)
}

// Reset esvazia o bilhete.
func (l *Ledger) Reset() { l.plays = nil }

func (l *Ledger) index(position int) int {
	for i, p := range l.plays {
		if p.Position == position {
			return i
		}
	}
	return -1
}

func (p *Play) reprice(active track.Regions) {
	p.Mode = game.Classify(p.BetNumber, active)
	p.Total = game.Price(p.BetNumber, p.Mode, p.Straight, p.Box, p.Combo)
}
