package track

import (
	"fmt"
	"time"
)

// Selection é o estado de sessão do apostador: datas e sorteios marcados.
// Não é segura para uso concorrente; pertence a um único dono (handler ou
// ticker), como o restante do motor.
type Selection struct {
	catalog *Catalog
	dates   []time.Time
	checked []string
	closed  map[string]bool
}

// TrackStatus é uma linha do quadro de sorteios exibido ao apostador.
type TrackStatus struct {
	Track   Track
	State   State
	Checked bool
}

// NewSelection cria uma seleção vazia sobre o catálogo.
func NewSelection(c *Catalog) *Selection {
	return &Selection{catalog: c, closed: make(map[string]bool)}
}

// SetDates substitui o conjunto de datas e reavalia o corte.
func (s *Selection) SetDates(dates []time.Time, now time.Time) {
	s.dates = append([]time.Time(nil), dates...)
	s.Evaluate(now)
}

// Dates retorna as datas selecionadas.
func (s *Selection) Dates() []time.Time {
	return append([]time.Time(nil), s.dates...)
}

// Check marca um sorteio. Falha se o nome é desconhecido ou se o sorteio
// já fechou para o dia corrente.
func (s *Selection) Check(name string, now time.Time) error {
	t, ok := s.catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown track %q", name)
	}
	s.Evaluate(now)
	if s.closed[name] {
		return fmt.Errorf("track %q closed for today", name)
	}
	for _, c := range s.checked {
		if c == name {
			return nil
		}
	}
	s.checked = append(s.checked, t.Name)
	return nil
}

// Uncheck desmarca um sorteio; ignora nomes não marcados.
func (s *Selection) Uncheck(name string) {
	for i, c := range s.checked {
		if c == name {
			s.checked = append(s.checked[:i], s.checked[i+1:]...)
			return
		}
	}
}

// Checked retorna os sorteios atualmente marcados.
func (s *Selection) Checked() []string {
	return append([]string(nil), s.checked...)
}

// Evaluate recalcula o estado de corte de todos os sorteios e desmarca os
// que fecharam. O fechamento é função pura de (datas, agora), então a
// chamada é idempotente e pode intercalar com qualquer mutação: só tira
// sorteios, nunca devolve — a reabertura acontece apenas quando uma troca
// de datas remove o dia corrente da seleção.
func (s *Selection) Evaluate(now time.Time) {
	closed := make(map[string]bool)
	for _, t := range s.catalog.tracks {
		if CutoffState(t, s.dates, now) == StateClosedForToday {
			closed[t.Name] = true
		}
	}
	s.closed = closed

	kept := s.checked[:0]
	for _, name := range s.checked {
		if !closed[name] {
			kept = append(kept, name)
		}
	}
	s.checked = kept
}

// Board retorna o quadro completo de sorteios com estado e marcação.
func (s *Selection) Board(now time.Time) []TrackStatus {
	s.Evaluate(now)
	out := make([]TrackStatus, 0, len(s.catalog.tracks))
	for _, t := range s.catalog.tracks {
		st := StateOpen
		if s.closed[t.Name] {
			st = StateClosedForToday
		}
		out = append(out, TrackStatus{Track: t, State: st, Checked: s.isChecked(t.Name)})
	}
	return out
}

func (s *Selection) isChecked(name string) bool {
	for _, c := range s.checked {
		if c == name {
			return true
		}
	}
	return false
}

// ActiveRegions deriva os mercados ativos da marcação corrente.
func (s *Selection) ActiveRegions() Regions {
	return s.catalog.ActiveRegions(s.checked)
}

// NonVenezuelaCount conta os sorteios marcados fora da Venezuela.
func (s *Selection) NonVenezuelaCount() int {
	return s.catalog.NonVenezuelaCount(s.checked)
}
