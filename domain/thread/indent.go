package thread

// Metrics sizes the indentation gutter drawn in front of a reply.
type Metrics struct {
	Bar  float64 // width of one depth bar
	Gap  float64 // space between adjacent bars
	Base float64 // inset applied to every row
}

var (
	// DefaultMetrics matches the point-based layout of graphical clients.
	DefaultMetrics = Metrics{Bar: 2, Gap: 3, Base: 8}
	// CellMetrics lays bars out in terminal cells: one cell per bar, one
	// blank cell between bars.
	CellMetrics = Metrics{Bar: 1, Gap: 1, Base: 0}
)

// Indentation is the rendering hint for one entry.
type Indentation struct {
	Level  uint
	Inset  float64
	JumpUp bool
}

// Indent returns the gutter width for level. Deep threads saturate at
// maxIndent instead of growing without bound.
func Indent(level, maxIndent uint, m Metrics) float64 {
	level = min(level, maxIndent)
	bars := float64(level) * m.Bar
	var gaps float64
	if level > 0 {
		gaps = float64(level-1) * m.Gap
	}
	return bars + gaps + m.Base
}

// IndentationOf combines the recorded depth of id with the gutter width.
func (d Depths) IndentationOf(id string, maxIndent uint, m Metrics) Indentation {
	depth := d.Of(id)
	return Indentation{
		Level:  min(depth.Level, maxIndent),
		Inset:  Indent(depth.Level, maxIndent, m),
		JumpUp: depth.JumpUp,
	}
}
