package track

// Region agrupa sorteios por mercado. O conjunto é fixo.
type Region string

const (
	RegionUSA          Region = "USA"
	RegionSantoDomingo Region = "Santo Domingo"
	RegionVenezuela    Region = "Venezuela"
)

// Track é um sorteio específico, com horário nominal de fechamento.
// Close vazio significa sempre aberto. RequiredDigits > 0 obriga todas as
// jogadas do bilhete a terem exatamente essa quantidade de dígitos.
type Track struct {
	Name           string
	Region         Region
	Close          string // "HH:MM", vazio = sem fechamento
	RequiredDigits int
}

// Regions indica quais mercados estão ativos na seleção corrente.
// É a única informação de pista que o classificador de modalidades consome.
type Regions struct {
	USA          bool
	SantoDomingo bool
	Venezuela    bool
}

// Catalog é o mapeamento estático região -> sorteios.
type Catalog struct {
	tracks []Track
	byName map[string]Track
}

// NewCatalog monta o catálogo padrão de sorteios.
func NewCatalog() *Catalog {
	return newCatalog(defaultTracks)
}

func newCatalog(ts []Track) *Catalog {
	c := &Catalog{tracks: ts, byName: make(map[string]Track, len(ts))}
	for _, t := range ts {
		c.byName[t.Name] = t
	}
	return c
}

// Tracks retorna todos os sorteios na ordem do catálogo.
func (c *Catalog) Tracks() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// Lookup retorna o sorteio pelo nome.
func (c *Catalog) Lookup(name string) (Track, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// ActiveRegions deriva os mercados ativos a partir dos nomes selecionados.
// Nomes desconhecidos são ignorados.
func (c *Catalog) ActiveRegions(names []string) Regions {
	var r Regions
	for _, n := range names {
		t, ok := c.byName[n]
		if !ok {
			continue
		}
		switch t.Region {
		case RegionUSA:
			r.USA = true
		case RegionSantoDomingo:
			r.SantoDomingo = true
		case RegionVenezuela:
			r.Venezuela = true
		}
	}
	return r
}

// NonVenezuelaCount conta quantos dos nomes selecionados são sorteios
// fora da Venezuela; é o multiplicador do total do bilhete.
func (c *Catalog) NonVenezuelaCount(names []string) int {
	n := 0
	for _, name := range names {
		t, ok := c.byName[name]
		if !ok {
			continue
		}
		if t.Region != RegionVenezuela {
			n++
		}
	}
	return n
}

var defaultTracks = []Track{
	// USA
	{Name: "New York Mid Day", Region: RegionUSA, Close: "14:20"},
	{Name: "New York Evening", Region: RegionUSA, Close: "22:00"},
	{Name: "Georgia Mid Day", Region: RegionUSA, Close: "12:20"},
	{Name: "Georgia Evening", Region: RegionUSA, Close: "18:40"},
	{Name: "Georgia Night", Region: RegionUSA, Close: "23:20"},
	{Name: "New Jersey Mid Day", Region: RegionUSA, Close: "12:50"},
	{Name: "New Jersey Evening", Region: RegionUSA, Close: "22:50"},
	{Name: "Florida Mid Day", Region: RegionUSA, Close: "13:25"},
	{Name: "Florida Evening", Region: RegionUSA, Close: "21:30"},
	{Name: "Connecticut Mid Day", Region: RegionUSA, Close: "13:30"},
	{Name: "Connecticut Evening", Region: RegionUSA, Close: "22:00"},
	{Name: "Pensilvania AM", Region: RegionUSA, Close: "12:45"},
	{Name: "Pensilvania PM", Region: RegionUSA, Close: "18:15"},
	{Name: "Brooklyn Midday", Region: RegionUSA, Close: "14:20", RequiredDigits: 3},
	{Name: "Brooklyn Evening", Region: RegionUSA, Close: "22:00", RequiredDigits: 3},
	{Name: "Front Midday", Region: RegionUSA, Close: "14:20", RequiredDigits: 3},
	{Name: "Front Evening", Region: RegionUSA, Close: "22:00", RequiredDigits: 3},

	// Santo Domingo
	{Name: "Real", Region: RegionSantoDomingo, Close: "12:45"},
	{Name: "Gana mas", Region: RegionSantoDomingo, Close: "14:25"},
	{Name: "Loteka", Region: RegionSantoDomingo, Close: "19:30"},
	{Name: "Nacional", Region: RegionSantoDomingo, Close: "20:30"},
	{Name: "Quiniela Pale", Region: RegionSantoDomingo, Close: "20:30"},
	{Name: "Primera Día", Region: RegionSantoDomingo, Close: "11:50"},
	{Name: "Suerte Día", Region: RegionSantoDomingo, Close: "12:20"},
	{Name: "Lotería Real", Region: RegionSantoDomingo, Close: "12:50"},
	{Name: "Suerte Tarde", Region: RegionSantoDomingo, Close: "17:50"},
	{Name: "Lotedom", Region: RegionSantoDomingo, Close: "17:50"},
	{Name: "Primera Noche", Region: RegionSantoDomingo, Close: "19:50"},
	{Name: "Panama", Region: RegionSantoDomingo, Close: "16:00"},

	// Venezuela não tem fechamento: aceita jogadas a qualquer hora.
	{Name: "Venezuela", Region: RegionVenezuela},
}
