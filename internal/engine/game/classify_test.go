package game

import (
	"testing"

	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
)

var (
	usaOnly   = track.Regions{USA: true}
	sdOnly    = track.Regions{SantoDomingo: true}
	usaAndVen = track.Regions{USA: true, Venezuela: true}
	usaAndSD  = track.Regions{USA: true, SantoDomingo: true}
	venOnly   = track.Regions{Venezuela: true}
	none      = track.Regions{}
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		number string
		active track.Regions
		want   Mode
	}{
		{"pale with venezuela and usa", "23-45", usaAndVen, ModePaleVen},
		{"pale x separator", "23x45", usaAndVen, ModePaleVen},
		{"pale santo domingo only", "23-45", sdOnly, ModePaleRD},
		{"pale needs a market", "23-45", none, ModeInvalid},
		{"pale venezuela without usa", "23-45", venOnly, ModeInvalid},
		{"pale blocked when usa joins sd", "23-45", usaAndSD, ModeInvalid},

		{"venezuela two digits", "12", usaAndVen, ModeVenezuela},
		{"venezuela three digits", "123", usaAndVen, ModePick3},
		{"venezuela four digits", "1234", usaAndVen, ModeWin4},

		{"usa win4", "1234", usaOnly, ModeWin4},
		{"usa pick3", "999", usaOnly, ModePick3},
		{"usa pulito", "22", usaOnly, ModePulito},

		{"sd quiniela", "12", sdOnly, ModeRDQuiniela},
		{"sd pick3", "123", sdOnly, ModePick3},
		{"sd win4", "1234", sdOnly, ModeWin4},

		{"no market", "999", none, ModeInvalid},
		{"usa and sd overlap", "123", usaAndSD, ModeInvalid},
		{"too short", "1", usaOnly, ModeInvalid},
		{"too long", "12345", usaOnly, ModeInvalid},
		{"not digits", "12a", usaOnly, ModeInvalid},
		{"empty", "", usaOnly, ModeInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.number, tc.active); got != tc.want {
				t.Errorf("Classify(%q, %+v) = %v, want %v", tc.number, tc.active, got, tc.want)
			}
		})
	}
}

func TestClassifyFromCatalogTracks(t *testing.T) {
	c := track.NewCatalog()

	if got := Classify("23-45", c.ActiveRegions([]string{"Venezuela", "New York Mid Day"})); got != ModePaleVen {
		t.Errorf("venezuela + new york = %v, want %v", got, ModePaleVen)
	}
	if got := Classify("23-45", c.ActiveRegions([]string{"Nacional"})); got != ModePaleRD {
		t.Errorf("nacional = %v, want %v", got, ModePaleRD)
	}
	if got := Classify("1234", c.ActiveRegions([]string{"New York Mid Day"})); got != ModeWin4 {
		t.Errorf("new york = %v, want %v", got, ModeWin4)
	}
	if got := Classify("12", c.ActiveRegions([]string{"Real"})); got != ModeRDQuiniela {
		t.Errorf("real = %v, want %v", got, ModeRDQuiniela)
	}
	if got := Classify("999", c.ActiveRegions(nil)); got != ModeInvalid {
		t.Errorf("no tracks = %v, want %v", got, ModeInvalid)
	}
}

func TestDigits(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"23-45", "2345"},
		{"23x45", "2345"},
		{"123", "123"},
		{"12a", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Digits(tc.in); got != tc.want {
			t.Errorf("Digits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
