package game

import (
	"regexp"

	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

// Mode é a modalidade de jogo derivada do número apostado e dos mercados
// ativos. O apostador nunca escolhe a modalidade diretamente.
type Mode string

const (
	ModePick3      Mode = "Pick 3"
	ModeWin4       Mode = "Win 4"
	ModePulito     Mode = "Pulito"
	ModeVenezuela  Mode = "Venezuela"
	ModeRDQuiniela Mode = "RD-Quiniela"
	ModePaleRD     Mode = "Pale-RD"
	ModePaleVen    Mode = "Pale-Ven"
	ModeInvalid    Mode = "-"
)

var paleRe = regexp.MustCompile(`^(\d{2})[-x](\d{2})$`)

// Classify mapeia (número apostado, mercados ativos) para a modalidade.
// A ordem das regras é comportamento documentado do produto e não pode
// mudar, mesmo parecendo ad hoc:
//  1. formato pale DD-DD / DDxDD;
//  2. Venezuela junto com USA;
//  3. USA sem Santo Domingo;
//  4. Santo Domingo sem USA.
func Classify(betNumber string, active track.Regions) Mode {
	if paleRe.MatchString(betNumber) {
		switch {
		case active.Venezuela && active.USA:
			return ModePaleVen
		case active.SantoDomingo && !active.USA:
			return ModePaleRD
		default:
			return ModeInvalid
		}
	}

	if !allDigits(betNumber) {
		return ModeInvalid
	}
	n := len(betNumber)
	if n < 2 || n > 4 {
		return ModeInvalid
	}

	switch {
	case active.Venezuela && active.USA:
		switch n {
		case 2:
			return ModeVenezuela
		case 3:
			return ModePick3
		default:
			return ModeWin4
		}
	case active.USA && !active.SantoDomingo:
		switch n {
		case 4:
			return ModeWin4
		case 3:
			return ModePick3
		default:
			return ModePulito
		}
	case active.SantoDomingo && !active.USA:
		switch n {
		case 2:
			return ModeRDQuiniela
		case 3:
			return ModePick3
		default:
			return ModeWin4
		}
	}
	return ModeInvalid
}

// Digits retorna só os dígitos do número apostado (remove o separador de
// pale). Vazio se houver qualquer caractere não esperado.
func Digits(betNumber string) string {
	if m := paleRe.FindStringSubmatch(betNumber); m != nil {
		return m[1] + m[2]
	}
	if allDigits(betNumber) {
		return betNumber
	}
	return ""
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
