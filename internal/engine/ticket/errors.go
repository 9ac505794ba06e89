package ticket

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingSelection indica submissão sem data ou sem sorteio marcado.
	ErrMissingSelection = errors.New("at least one date and one track must be selected")

	// ErrAlreadyConfirmed indica tentativa de confirmar duas vezes o mesmo rascunho.
	ErrAlreadyConfirmed = errors.New("ticket draft already confirmed")
)

// TrackClosedError nomeia o primeiro sorteio cujo corte já passou para uma
// seleção do dia corrente.
type TrackClosedError struct {
	Track string
}

func (e *TrackClosedError) Error() string {
	return fmt.Sprintf("track %q closed for today", e.Track)
}

// InvalidPlaysError acumula todas as posições reprovadas na validação do
// bilhete, com o motivo de cada uma, para a interface destacar todas as
// linhas de uma vez em vez de parar na primeira.
type InvalidPlaysError struct {
	Reasons map[int]string
}

// Positions retorna as posições reprovadas em ordem.
func (e *InvalidPlaysError) Positions() []int {
	out := make([]int, 0, len(e.Reasons))
	for p := range e.Reasons {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (e *InvalidPlaysError) Error() string {
	ps := e.Positions()
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%d: %s", p, e.Reasons[p])
	}
	return "invalid plays: " + strings.Join(parts, "; ")
}
