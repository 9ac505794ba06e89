package game

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CombinationCount é o coeficiente multinomial do multiconjunto de dígitos
// do número apostado: quantas ordenações distintas existem. "112" -> 3,
// "1122" -> 6, "1111" -> 1. Precifica a aposta combo.
func CombinationCount(betNumber string) int64 {
	digits := Digits(betNumber)
	if digits == "" {
		return 0
	}
	var mult [10]int
	for _, r := range digits {
		mult[r-'0']++
	}
	n := factorial(len(digits))
	for _, m := range mult {
		if m > 1 {
			n /= factorial(m)
		}
	}
	return n
}

func factorial(n int) int64 {
	f := int64(1)
	for i := 2; i <= n; i++ {
		f *= int64(i)
	}
	return f
}

// ParseAmount interpreta um campo de aposta digitado livremente.
// Valor não numérico ou negativo conta como zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Price calcula o total de uma jogada, arredondado a 2 casas.
// A semântica dos campos varia por modalidade:
//   - Pulito: box carrega a lista de posições separadas por vírgula e o
//     total é straight vezes a quantidade de posições;
//   - quinielas e pales pagam só o straight;
//   - Pick 3 / Win 4 somam straight + box + combo vezes as combinações.
//
// Precisa ser reexecutada sempre que o número, os valores ou o conjunto de
// sorteios ativos mudarem, porque a reclassificação troca a regra aplicada.
func Price(betNumber string, mode Mode, straight, box, combo string) decimal.Decimal {
	if mode == ModeInvalid || betNumber == "" {
		return decimal.Zero
	}

	st := ParseAmount(straight)

	switch mode {
	case ModePulito:
		n := countPositions(box)
		if n == 0 {
			return decimal.Zero.Round(2)
		}
		return st.Mul(decimal.NewFromInt(int64(n))).Round(2)

	case ModeVenezuela, ModeRDQuiniela, ModePaleRD, ModePaleVen:
		return st.Round(2)

	case ModeWin4, ModePick3:
		bx := ParseAmount(box)
		cb := ParseAmount(combo)
		combos := decimal.NewFromInt(CombinationCount(betNumber))
		return st.Add(bx).Add(cb.Mul(combos)).Round(2)

	default:
		bx := ParseAmount(box)
		cb := ParseAmount(combo)
		return st.Add(bx).Add(cb).Round(2)
	}
}

// countPositions conta as posições não vazias de uma lista "1,2,3".
func countPositions(list string) int {
	n := 0
	for _, p := range strings.Split(list, ",") {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
