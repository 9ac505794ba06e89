package game

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCombinationCount(t *testing.T) {
	cases := []struct {
		number string
		want   int64
	}{
		{"12", 2},
		{"11", 1},
		{"112", 3},
		{"123", 6},
		{"1122", 6},
		{"1111", 1},
		{"1234", 24},
		{"1112", 4},
		{"23-45", 24}, // pale conta pelos dígitos
		{"", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := CombinationCount(tc.number); got != tc.want {
			t.Errorf("CombinationCount(%q) = %d, want %d", tc.number, got, tc.want)
		}
	}
}

func TestPrice(t *testing.T) {
	cases := []struct {
		name     string
		number   string
		mode     Mode
		straight string
		box      string
		combo    string
		want     string
	}{
		{"pick3 with combo", "123", ModePick3, "1", "0", "0.50", "4"},
		{"pick3 repeated digits", "112", ModePick3, "0", "0", "1", "3"},
		{"win4 all fields", "1122", ModeWin4, "2", "3", "0.25", "6.5"},
		{"pulito positions", "22", ModePulito, "2", "1,2,3", "", "6"},
		{"pulito empty positions", "22", ModePulito, "2", "", "", "0"},
		{"pulito blank entries ignored", "22", ModePulito, "2", "1,,2", "", "4"},
		{"venezuela straight only", "12", ModeVenezuela, "5", "9", "9", "5"},
		{"rd quiniela straight only", "12", ModeRDQuiniela, "3", "1", "1", "3"},
		{"pale rd straight only", "23-45", ModePaleRD, "4", "1", "1", "4"},
		{"pale ven straight only", "23x45", ModePaleVen, "2.50", "", "", "2.5"},
		{"invalid is free", "123", ModeInvalid, "9", "9", "9", "0"},
		{"empty number is free", "", ModePick3, "9", "9", "9", "0"},
		{"garbage amounts parse as zero", "123", ModePick3, "abc", "", "x", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, _ := decimal.NewFromString(tc.want)
			got := Price(tc.number, tc.mode, tc.straight, tc.box, tc.combo)
			if !got.Equal(want) {
				t.Errorf("Price(%q, %v) = %s, want %s", tc.number, tc.mode, got, want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	if !ParseAmount(" 2.50 ").Equal(decimal.NewFromFloat(2.5)) {
		t.Error("trimmed decimal should parse")
	}
	if !ParseAmount("nope").IsZero() {
		t.Error("garbage should parse as zero")
	}
	if !ParseAmount("-3").IsZero() {
		t.Error("negative should parse as zero")
	}
}
