package export

import (
	"sort"
	"strings"
)

// Alignment is the horizontal alignment of text lines within a frame.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Padding is the space between a box border and its content, in points.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Style is a named bundle of typographic attributes.
type Style struct {
	Name string

	// FontFamily is a PDF core font family ("Helvetica", "Courier", "Times").
	FontFamily string

	// FontStyle is "", "B", "I" or "BI".
	FontStyle string

	FontSize float64
	Leading  float64

	TextColor PDFColor
	Alignment Alignment

	LeftIndent  float64
	RightIndent float64
	SpaceBefore float64
	SpaceAfter  float64

	// BackColor and BorderColor are nil when the style draws no box.
	BackColor     *PDFColor
	BorderColor   *PDFColor
	BorderWidth   float64
	BorderPadding Padding
}

// Boxed reports whether text in this style is drawn inside a filled or bordered box.
func (s Style) Boxed() bool {
	return s.BackColor != nil || (s.BorderColor != nil && s.BorderWidth > 0)
}

// Style names used by the report.
const (
	StyleTitle      = "Title"
	StyleSubtitle   = "Subtitle"
	StyleHeading    = "Heading"
	StyleSubheading = "Subheading"
	StyleBody       = "Body"
	StyleFrontBody  = "FrontBody"
	StyleCode       = "Code"
)

// Stylesheet holds named styles. Styles are copied on the way in and out.
type Stylesheet struct {
	styles map[string]Style
}

// NewStylesheet creates a stylesheet from the given styles, keyed by Name.
func NewStylesheet(styles ...Style) *Stylesheet {
	ss := &Stylesheet{styles: make(map[string]Style, len(styles))}
	for _, s := range styles {
		ss.styles[s.Name] = s
	}
	return ss
}

// Get returns the named style.
func (ss *Stylesheet) Get(name string) (Style, bool) {
	s, ok := ss.styles[name]
	return s, ok
}

// Names returns the style names in sorted order.
func (ss *Stylesheet) Names() []string {
	names := make([]string, 0, len(ss.styles))
	for n := range ss.styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func colorPtr(hex string) *PDFColor {
	c := HexToPDFColor(hex)
	return &c
}

// DefaultStylesheet returns the styles used by the lab report.
func DefaultStylesheet() *Stylesheet {
	return NewStylesheet(
		Style{
			Name: StyleTitle, FontFamily: "Helvetica", FontStyle: "B",
			FontSize: 32, Leading: 38, TextColor: Black, Alignment: AlignCenter,
			SpaceAfter: 24,
		},
		Style{
			Name: StyleSubtitle, FontFamily: "Helvetica",
			FontSize: 16, Leading: 22, TextColor: HexToPDFColor("#444444"), Alignment: AlignCenter,
			SpaceAfter: 12,
		},
		Style{
			Name: StyleHeading, FontFamily: "Helvetica", FontStyle: "B",
			FontSize: 18, Leading: 22, TextColor: Black,
			SpaceBefore: 12, SpaceAfter: 6,
		},
		Style{
			Name: StyleSubheading, FontFamily: "Helvetica", FontStyle: "BI",
			FontSize: 14, Leading: 18, TextColor: HexToPDFColor("#2A4365"),
			SpaceBefore: 12, SpaceAfter: 6,
		},
		Style{
			Name: StyleBody, FontFamily: "Helvetica",
			FontSize: 11, Leading: 16, TextColor: Black,
			SpaceBefore: 6, SpaceAfter: 6,
		},
		Style{
			Name: StyleFrontBody, FontFamily: "Helvetica",
			FontSize: 11, Leading: 16, TextColor: Black, Alignment: AlignCenter,
			LeftIndent: 36, RightIndent: 36,
			SpaceBefore: 6, SpaceAfter: 6,
		},
		Style{
			Name: StyleCode, FontFamily: "Courier",
			FontSize: 10, Leading: 13, TextColor: Black,
			LeftIndent:  36,
			SpaceBefore: 8, SpaceAfter: 12,
			BackColor:     colorPtr("#F5F5F5"),
			BorderColor:   colorPtr("#CCCCCC"),
			BorderWidth:   0.5,
			BorderPadding: Padding{Top: 8, Right: 6, Bottom: 8, Left: 6},
		},
	)
}

// combineFontStyle merges fpdf style letters, normalized to "", "B", "I" or "BI".
func combineFontStyle(styles ...string) string {
	joined := strings.ToUpper(strings.Join(styles, ""))
	var out string
	if strings.Contains(joined, "B") {
		out += "B"
	}
	if strings.Contains(joined, "I") {
		out += "I"
	}
	return out
}
