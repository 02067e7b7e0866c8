package category

import (
	"fmt"
	"strings"
)

// Category is a tourism-interest category. Question options are tagged with a
// Category and scores are accumulated per Category.
type Category int

const (
	TourGuiado Category = iota + 1
	Caminata
	Buceo
	Cascadas
	Lancha
	Aves
	Cultura
	Kayak
	Camping
	Fauna
	Arqueologia
	Bicicleta
	Jardines
	Templos
	Estrellas
	Piscinas
)

type entry struct {
	category Category
	label    string
	key      string
}

// table maps each category to the label used in the question corpus and the
// short key expected by the preferences API.
//
// TODO: confirm with product whether "Tour guiado" should feed "tour" or
// "arqueologia"; the mapping below keeps them separate.
var table = []entry{
	{TourGuiado, "Tour guiado", "tour"},
	{Caminata, "Caminata en senderos", "caminata"},
	{Buceo, "Buceo", "buceo"},
	{Cascadas, "Cascadas", "cascadas"},
	{Lancha, "Paseo en lancha rápida", "lancha"},
	{Aves, "Observación de aves migratorias", "aves"},
	{Cultura, "Experiencia cultural", "cultura"},
	{Kayak, "Excursión en kayak", "kayak"},
	{Camping, "Camping en la montaña", "camping"},
	{Fauna, "Avistamiento de fauna silvestre", "fauna"},
	{Arqueologia, "Tour arqueológico", "arqueologia"},
	{Bicicleta, "Paseo en bicicleta de montaña", "bicicleta"},
	{Jardines, "Tour de jardines botánicos", "jardines"},
	{Templos, "Tour de templos y monumentos", "templos"},
	{Estrellas, "Observación de estrellas", "estrellas"},
	{Piscinas, "Piscinas naturales, cenotes", "piscinas"},
}

var (
	byLabel = make(map[string]Category, len(table))
	byKey   = make(map[string]Category, len(table))
)

func init() {
	for _, e := range table {
		byLabel[e.label] = e.category
		byKey[e.key] = e.category
	}
}

// All returns every known category in table order.
func All() []Category {
	out := make([]Category, len(table))
	for i, e := range table {
		out[i] = e.category
	}
	return out
}

// Keys returns every known short key in table order.
func Keys() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.key
	}
	return out
}

// Parse resolves a corpus label such as "Buceo" to its Category.
// Surrounding whitespace is ignored; matching is otherwise exact.
func Parse(label string) (Category, error) {
	c, ok := byLabel[strings.TrimSpace(label)]
	if !ok {
		return 0, fmt.Errorf("unknown category label %q", label)
	}
	return c, nil
}

// FromKey resolves a short key such as "buceo" to its Category.
func FromKey(key string) (Category, bool) {
	c, ok := byKey[key]
	return c, ok
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= TourGuiado && c <= Piscinas
}

// Label returns the human-readable label, or "" for an unknown category.
func (c Category) Label() string {
	if !c.Valid() {
		return ""
	}
	return table[c-1].label
}

// Key returns the short API key, or "" for an unknown category.
func (c Category) Key() string {
	if !c.Valid() {
		return ""
	}
	return table[c-1].key
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return table[c-1].label
}
