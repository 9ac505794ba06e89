package track

import (
	"fmt"
	"time"
)

// State é o estado de um sorteio frente ao horário de corte.
type State string

const (
	StateOpen           State = "OPEN"
	StateClosedForToday State = "CLOSED_FOR_TODAY"
)

// lateClose marca o limite a partir do qual o corte efetivo vira 22:00.
const (
	lateCloseMinutes      = 21*60 + 30 // 21:30
	lateCutoffMinutes     = 22 * 60    // 22:00
	earlyCutoffLeadMinute = 10
)

// parseClock converte "HH:MM" em minutos desde a meia-noite.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}

// EffectiveCutoffMinutes calcula o corte efetivo de um fechamento nominal:
// fechamentos depois de 21:30 cortam às 22:00, os demais 10 minutos antes
// do horário nominal.
func EffectiveCutoffMinutes(nominal string) (int, error) {
	n, err := parseClock(nominal)
	if err != nil {
		return 0, err
	}
	if n > lateCloseMinutes {
		return lateCutoffMinutes, nil
	}
	return n - earlyCutoffLeadMinute, nil
}

// CutoffState decide se um sorteio ainda aceita jogadas. Fecha apenas quando
// o conjunto de datas selecionadas inclui o dia corrente e o relógio já
// passou do corte efetivo. Venezuela (sem fechamento) nunca fecha.
func CutoffState(t Track, selectedDates []time.Time, now time.Time) State {
	if t.Close == "" {
		return StateOpen
	}
	if !containsDay(selectedDates, now) {
		return StateOpen
	}
	cut, err := EffectiveCutoffMinutes(t.Close)
	if err != nil {
		return StateOpen
	}
	if now.Hour()*60+now.Minute() >= cut {
		return StateClosedForToday
	}
	return StateOpen
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
