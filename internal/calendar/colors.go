package calendar

// DefaultColor is used for any category without an entry in the palette.
const DefaultColor = "#D3D3D3"

// CategoryColor pairs a category with its display color.
type CategoryColor struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// palette is the brand color map, in legend order.
var palette = []CategoryColor{
	{"Marketing Brief", "#005899"},
	{"Eblast", "#27AAE1"},
	{"Expected Marketing Need", "#F58226"},
	{"Member Engage", "#A2D4AD"},
	{"Social", "#EFC337"},
	{"Other", "#D3D3D3"},
}

// ColorFor returns the display color for a category. It is total: unknown
// and empty categories get DefaultColor.
func ColorFor(category string) string {
	for _, p := range palette {
		if p.Category == category {
			return p.Color
		}
	}
	return DefaultColor
}

// Palette returns a copy of the configured category colors.
func Palette() []CategoryColor {
	return append([]CategoryColor(nil), palette...)
}
