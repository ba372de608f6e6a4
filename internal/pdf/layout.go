package pdf

// Geometry is a page size and its margins, in points.
type Geometry struct {
	Width, Height            float64
	Top, Right, Bottom, Left float64
}

// A4 is the default page: 210x297 mm with half-inch margins.
var A4 = Geometry{Width: 595.28, Height: 841.89, Top: 36, Right: 36, Bottom: 36, Left: 36}

// ContentWidth is the printable width between the side margins.
func (g Geometry) ContentWidth() float64 { return g.Width - g.Left - g.Right }

// ContentHeight is the printable height between the top and bottom margins.
func (g Geometry) ContentHeight() float64 { return g.Height - g.Top - g.Bottom }

// placed records where one output line landed.
type placed struct {
	page        int // 1-based
	top, bottom float64
	marker      string
	text        string
}

// layout tracks the vertical cursor and starts pages on demand. Every line
// goes through next, so no line is ever placed past the bottom margin unless
// it is the first line of a page and taller than the page itself.
type layout struct {
	geo     Geometry
	pages   int
	y       float64
	placed  []placed
	newPage func()
}

// next reserves a row of height h and returns its top edge.
func (l *layout) next(h float64) float64 {
	if l.pages == 0 || (l.y+h > l.geo.Height-l.geo.Bottom && l.y > l.geo.Top) {
		l.pages++
		l.y = l.geo.Top
		if l.newPage != nil {
			l.newPage()
		}
	}
	top := l.y
	l.y += h
	return top
}

// gap adds vertical space, except at the top of a page.
func (l *layout) gap(h float64) {
	if l.pages > 0 && l.y > l.geo.Top {
		l.y += h
	}
}

func (l *layout) record(top, h float64, marker, text string) {
	l.placed = append(l.placed, placed{page: l.pages, top: top, bottom: top + h, marker: marker, text: text})
}
