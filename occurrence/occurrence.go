// Package occurrence models the point observations a fitted
// distribution model was trained on.
package occurrence

// Category classifies an observation point.
type Category string

const (
	Background Category = "background"
	Absence    Category = "absence"
	Presence   Category = "presence"
)

// Categories lists all categories in their fixed layering order.
// Groups are always composed in this sequence so presence markers
// render on top of absence, and absence on top of background.
var Categories = [3]Category{Background, Absence, Presence}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == Background || c == Absence || c == Presence
}

// Observation is one training-data point.
type Observation struct {
	Lon, Lat float64
	Category Category
}

// Group is the set of observations of one category.
type Group struct {
	Category Category
	Points   []Observation
}

// Partition splits observations into per-category groups, ordered
// background, absence, presence. Categories with no observations are
// omitted; input row order within a category is preserved.
func Partition(obs []Observation) []Group {
	byCat := make(map[Category][]Observation, len(Categories))
	for _, o := range obs {
		byCat[o.Category] = append(byCat[o.Category], o)
	}

	groups := make([]Group, 0, len(Categories))
	for _, c := range Categories {
		if pts := byCat[c]; len(pts) > 0 {
			groups = append(groups, Group{Category: c, Points: pts})
		}
	}
	return groups
}
