package export

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

const (
	// ListIndent is the horizontal space reserved for list bullets and numbers.
	ListIndent = 18.0

	// BulletGlyph marks bullet list items.
	BulletGlyph = "•"

	// TabWidth is the number of spaces a tab expands to in preformatted text.
	TabWidth = 4

	fitEpsilon = 1e-6
)

// piece is a run of text on one line drawn in a single font.
type piece struct {
	run   Run
	text  string
	width float64
}

type line struct {
	pieces []piece
	width  float64
}

func (l *line) add(pieces []piece, width float64) {
	for _, pc := range pieces {
		if n := len(l.pieces); n > 0 && l.pieces[n-1].run.sameFont(pc.run) {
			l.pieces[n-1].text += pc.text
			l.pieces[n-1].width += pc.width
			continue
		}
		l.pieces = append(l.pieces, pc)
	}
	l.width += width
}

func (l line) String() string {
	var sb strings.Builder
	for _, pc := range l.pieces {
		sb.WriteString(pc.text)
	}
	return sb.String()
}

// paginator places blocks greedily onto pages of an fpdf document.
type paginator struct {
	pdf    *fpdf.Fpdf
	cfg    *PDFReportConfig
	styles *Stylesheet
	tr     func(string) string

	y         float64
	atTop     bool
	prevAfter float64

	layout *Layout
	images map[string]bool
	onPage func(page int)
}

func newPaginator(pdf *fpdf.Fpdf, cfg *PDFReportConfig, styles *Stylesheet) *paginator {
	return &paginator{
		pdf:    pdf,
		cfg:    cfg,
		styles: styles,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		layout: &Layout{},
		images: make(map[string]bool),
	}
}

func (p *paginator) frameX() float64      { return p.cfg.MarginLeft }
func (p *paginator) frameWidth() float64  { return p.cfg.FrameWidth() }
func (p *paginator) frameHeight() float64 { return p.cfg.FrameHeight() }
func (p *paginator) bottom() float64      { return p.cfg.PageHeight - p.cfg.MarginBottom }
func (p *paginator) page() int            { return p.pdf.PageNo() }

func (p *paginator) newPage() {
	p.pdf.AddPage()
	p.y = p.cfg.MarginTop
	p.atTop = true
	p.prevAfter = 0
	p.layout.Pages = p.pdf.PageNo()
	if p.onPage != nil {
		p.onPage(p.layout.Pages)
	}
}

func (p *paginator) fits(h float64) bool {
	return p.y+h <= p.bottom()+fitEpsilon
}

// applySpaceBefore adds a block's leading space. It is suppressed at the top
// of a page and collapses with the previous block's trailing space.
func (p *paginator) applySpaceBefore(before float64) {
	if p.atTop {
		return
	}
	p.y += math.Max(before-p.prevAfter, 0)
}

func (p *paginator) applySpaceAfter(after float64) {
	p.y = math.Min(p.y+after, p.bottom())
	p.prevAfter = after
}

func (p *paginator) style(name string) (Style, error) {
	s, ok := p.styles.Get(name)
	if !ok {
		return Style{}, werrors.Internal(nil, werrors.ErrRenderFailed, "unknown paragraph style").
			WithContext("style", name)
	}
	return s, nil
}

func overflow(idx int, kind BlockKind, what string) error {
	return werrors.Layout(werrors.ErrLayoutOverflow, "%s does not fit on an empty page", what).
		WithContext("block", strconv.Itoa(idx)).
		WithContext("kind", string(kind))
}

// place lays out one block and records its placement.
func (p *paginator) place(idx int, block Block) (Placement, error) {
	switch b := block.(type) {
	case Paragraph:
		return p.placeParagraph(idx, b)
	case Spacer:
		return p.placeSpacer(idx, b), nil
	case BulletList:
		markers := make([]string, len(b.Items))
		for i := range markers {
			markers[i] = BulletGlyph
		}
		return p.placeList(idx, KindBulletList, b.Items, markers, b.Style, b.BulletSize)
	case NumberedList:
		start := b.Start
		if start == 0 {
			start = 1
		}
		markers := make([]string, len(b.Items))
		for i := range markers {
			markers[i] = strconv.Itoa(start+i) + "."
		}
		return p.placeList(idx, KindNumberedList, b.Items, markers, b.Style, b.BulletSize)
	case Preformatted:
		return p.placePreformatted(idx, b)
	case Image:
		return p.placeImage(idx, b)
	case PageBreak:
		return p.placePageBreak(idx), nil
	default:
		return Placement{}, werrors.Internal(nil, werrors.ErrRenderFailed, fmt.Sprintf("unsupported block type %T", block))
	}
}

// -----------------------------------------------------------------------------
// Text
// -----------------------------------------------------------------------------

func (p *paginator) useFont(st Style, r Run, size float64) {
	family := st.FontFamily
	if r.Code {
		family = "Courier"
	}
	var extra string
	if r.Bold {
		extra += "B"
	}
	if r.Italic {
		extra += "I"
	}
	p.pdf.SetFont(family, combineFontStyle(st.FontStyle, extra), size)
}

func (p *paginator) measure(st Style, r Run, s string) float64 {
	p.useFont(st, r, st.FontSize)
	return p.pdf.GetStringWidth(p.tr(s))
}

// splitWords breaks runs at whitespace. A word may span several runs.
func splitWords(runs []Run) [][]Run {
	var words [][]Run
	var cur []Run
	flush := func() {
		if len(cur) > 0 {
			words = append(words, cur)
			cur = nil
		}
	}
	for _, r := range runs {
		var sb strings.Builder
		for _, ch := range r.Text {
			if unicode.IsSpace(ch) {
				if sb.Len() > 0 {
					cur = append(cur, Run{Text: sb.String(), Bold: r.Bold, Italic: r.Italic, Code: r.Code})
					sb.Reset()
				}
				flush()
				continue
			}
			sb.WriteRune(ch)
		}
		if sb.Len() > 0 {
			cur = append(cur, Run{Text: sb.String(), Bold: r.Bold, Italic: r.Italic, Code: r.Code})
		}
	}
	flush()
	return words
}

// wrap fills lines greedily at word boundaries. A word wider than width
// occupies a line of its own.
func (p *paginator) wrap(runs []Run, st Style, width float64) []line {
	var lines []line
	var cur line
	for _, word := range splitWords(runs) {
		pieces := make([]piece, len(word))
		var ww float64
		for i, r := range word {
			pieces[i] = piece{run: r, text: r.Text, width: p.measure(st, r, r.Text)}
			ww += pieces[i].width
		}
		if len(cur.pieces) == 0 {
			cur.add(pieces, ww)
			continue
		}
		space := p.measure(st, word[0], " ")
		if cur.width+space+ww > width+fitEpsilon {
			lines = append(lines, cur)
			cur = line{}
			cur.add(pieces, ww)
			continue
		}
		pieces[0].text = " " + pieces[0].text
		pieces[0].width += space
		cur.add(pieces, ww+space)
	}
	if len(cur.pieces) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func baselineOffset(st Style) float64 {
	return (st.Leading-st.FontSize)/2 + st.FontSize*0.8
}

func (p *paginator) setTextColor(c PDFColor) {
	r, g, b := c.RGB()
	p.pdf.SetTextColor(r, g, b)
}

func (p *paginator) drawLine(st Style, ln line, top, indent, avail float64) {
	x := p.frameX() + st.LeftIndent + indent
	if st.Alignment == AlignCenter {
		x += (avail - ln.width) / 2
	}
	p.setTextColor(st.TextColor)
	baseline := top + baselineOffset(st)
	for _, pc := range ln.pieces {
		p.useFont(st, pc.run, st.FontSize)
		p.pdf.Text(x, baseline, p.tr(pc.text))
		x += pc.width
	}
}

// flowLines draws lines top to bottom, breaking pages between lines.
// onFirst is called with the top of the first line once it is placed.
func (p *paginator) flowLines(idx int, kind BlockKind, st Style, lines []line, indent, avail float64, onFirst func(top float64)) (first, last int, err error) {
	p.applySpaceBefore(st.SpaceBefore)
	first = p.page()
	for i, ln := range lines {
		if !p.fits(st.Leading) {
			if p.atTop {
				return 0, 0, overflow(idx, kind, "a text line")
			}
			p.newPage()
			if i == 0 {
				first = p.page()
			}
		}
		p.drawLine(st, ln, p.y, indent, avail)
		if i == 0 && onFirst != nil {
			onFirst(p.y)
		}
		p.y += st.Leading
		p.atTop = false
	}
	last = p.page()
	p.applySpaceAfter(st.SpaceAfter)
	return first, last, nil
}

// drawn returns s as the page shows it. The core fonts are cp1252 encoded
// and every rune outside that code page is drawn as a dot.
func (p *paginator) drawn(s string) string {
	out, err := charmap.Windows1252.NewDecoder().String(p.tr(s))
	if err != nil {
		return s
	}
	return out
}

func (p *paginator) drawnAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = p.drawn(s)
	}
	return out
}

func (p *paginator) lineStrings(lines []line) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = p.drawn(ln.String())
	}
	return out
}

func (p *paginator) placeParagraph(idx int, b Paragraph) (Placement, error) {
	st, err := p.style(b.Style)
	if err != nil {
		return Placement{}, err
	}
	avail := p.frameWidth() - st.LeftIndent - st.RightIndent
	lines := p.wrap(ParseInline(b.Text), st, avail)

	first, last, err := p.flowLines(idx, KindParagraph, st, lines, 0, avail, nil)
	if err != nil {
		return Placement{}, err
	}
	return Placement{
		Index:     idx,
		Kind:      KindParagraph,
		FirstPage: first,
		LastPage:  last,
		Lines:     p.lineStrings(lines),
	}, nil
}

func (p *paginator) placeList(idx int, kind BlockKind, items, markers []string, styleName string, bulletSize float64) (Placement, error) {
	st, err := p.style(styleName)
	if err != nil {
		return Placement{}, err
	}
	if bulletSize <= 0 {
		bulletSize = st.FontSize
	}
	avail := p.frameWidth() - st.LeftIndent - st.RightIndent - ListIndent

	pl := Placement{Index: idx, Kind: kind, Markers: p.drawnAll(markers), Items: make([][]string, len(items))}
	for i, item := range items {
		lines := p.wrap(ParseInline(item), st, avail)
		marker := markers[i]
		first, last, err := p.flowLines(idx, kind, st, lines, ListIndent, avail, func(top float64) {
			p.pdf.SetFont("Helvetica", "", bulletSize)
			p.setTextColor(st.TextColor)
			p.pdf.Text(p.frameX()+st.LeftIndent, top+baselineOffset(st), p.tr(marker))
		})
		if err != nil {
			return Placement{}, err
		}
		if i == 0 {
			pl.FirstPage = first
		}
		pl.LastPage = last
		pl.Items[i] = p.lineStrings(lines)
	}
	if len(items) == 0 {
		pl.FirstPage, pl.LastPage = p.page(), p.page()
	}
	return pl, nil
}

// -----------------------------------------------------------------------------
// Preformatted
// -----------------------------------------------------------------------------

// ExpandTabs replaces each tab with TabWidth spaces.
func ExpandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}

// hardWrap splits s into lines and breaks any line wider than width at the
// character that overflows. No character is dropped or reordered.
func (p *paginator) hardWrap(st Style, s string, width float64) []string {
	p.useFont(st, Run{}, st.FontSize)
	var out []string
	for _, raw := range strings.Split(s, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		var cur []rune
		var w float64
		for _, r := range raw {
			cw := p.pdf.GetStringWidth(p.tr(string(r)))
			if len(cur) > 0 && w+cw > width+fitEpsilon {
				out = append(out, string(cur))
				cur, w = nil, 0
			}
			cur = append(cur, r)
			w += cw
		}
		out = append(out, string(cur))
	}
	return out
}

func (p *paginator) drawBox(st Style, x, y, w, h float64) {
	var mode string
	if st.BackColor != nil {
		r, g, b := st.BackColor.RGB()
		p.pdf.SetFillColor(r, g, b)
		mode += "F"
	}
	if st.BorderColor != nil && st.BorderWidth > 0 {
		r, g, b := st.BorderColor.RGB()
		p.pdf.SetDrawColor(r, g, b)
		p.pdf.SetLineWidth(st.BorderWidth)
		mode += "D"
	}
	if mode != "" {
		p.pdf.Rect(x, y, w, h, mode)
	}
}

func (p *paginator) placePreformatted(idx int, b Preformatted) (Placement, error) {
	st, err := p.style(b.Style)
	if err != nil {
		return Placement{}, err
	}
	pad := st.BorderPadding
	boxX := p.frameX() + st.LeftIndent
	boxW := p.frameWidth() - st.LeftIndent - st.RightIndent
	lines := p.hardWrap(st, ExpandTabs(b.Text), boxW-pad.Left-pad.Right)

	pl := Placement{Index: idx, Kind: KindPreformatted, Lines: p.drawnAll(lines)}
	p.applySpaceBefore(st.SpaceBefore)
	pl.FirstPage = p.page()

	remaining := lines
	placedAny := false
	for len(remaining) > 0 {
		room := p.bottom() - p.y - pad.Top - pad.Bottom
		n := int(math.Floor(room/st.Leading + fitEpsilon))
		if n > len(remaining) {
			n = len(remaining)
		}
		if n <= 0 {
			if p.atTop {
				return Placement{}, overflow(idx, KindPreformatted, "a preformatted line")
			}
			p.newPage()
			if !placedAny {
				pl.FirstPage = p.page()
			}
			continue
		}

		// Box and text are drawn per page segment.
		h := pad.Top + float64(n)*st.Leading + pad.Bottom
		p.drawBox(st, boxX, p.y, boxW, h)
		p.setTextColor(st.TextColor)
		p.useFont(st, Run{}, st.FontSize)
		top := p.y + pad.Top
		for _, s := range remaining[:n] {
			p.pdf.Text(boxX+pad.Left, top+baselineOffset(st), p.tr(s))
			top += st.Leading
		}
		p.y += h
		p.atTop = false
		placedAny = true
		remaining = remaining[n:]
		if len(remaining) > 0 {
			p.newPage()
		}
	}
	pl.LastPage = p.page()
	p.applySpaceAfter(st.SpaceAfter)
	return pl, nil
}

// -----------------------------------------------------------------------------
// Images, spacers and page breaks
// -----------------------------------------------------------------------------

func (p *paginator) placeImage(idx int, b Image) (Placement, error) {
	w, h := b.Fit()
	if w > p.frameWidth()+fitEpsilon || h > p.frameHeight()+fitEpsilon {
		return Placement{}, overflow(idx, KindImage, fmt.Sprintf("a %.0fx%.0f image", w, h))
	}
	if !p.fits(h) {
		p.newPage()
	}

	name := b.Name
	if name == "" {
		name = "image-" + strconv.Itoa(idx)
	}
	opts := fpdf.ImageOptions{ImageType: fpdfImageType(b.Format)}
	if !p.images[name] {
		p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(b.Data))
		if p.pdf.Err() {
			return Placement{}, werrors.Internal(p.pdf.Error(), werrors.ErrRenderFailed, "failed to embed image").
				WithContext("image", name)
		}
		p.images[name] = true
	}

	x := p.frameX() + (p.frameWidth()-w)/2
	p.pdf.ImageOptions(name, x, p.y, w, h, false, opts, 0, "")

	pl := Placement{
		Index:     idx,
		Kind:      KindImage,
		FirstPage: p.page(),
		LastPage:  p.page(),
		Image: &Rect{
			X:      roundToPrecision(x, 3),
			Y:      roundToPrecision(p.y, 3),
			Width:  roundToPrecision(w, 3),
			Height: roundToPrecision(h, 3),
		},
	}
	p.y += h
	p.atTop = false
	p.prevAfter = 0
	return pl, nil
}

// placeSpacer drops a spacer that does not fit and starts a new page instead.
func (p *paginator) placeSpacer(idx int, b Spacer) Placement {
	pl := Placement{Index: idx, Kind: KindSpacer}
	if !p.fits(b.Height) {
		p.newPage()
		pl.Dropped = true
		return pl
	}
	p.y += b.Height
	p.atTop = false
	p.prevAfter = 0
	pl.FirstPage, pl.LastPage = p.page(), p.page()
	return pl
}

// placePageBreak is a no-op on a page that is still empty.
func (p *paginator) placePageBreak(idx int) Placement {
	pl := Placement{Index: idx, Kind: KindPageBreak}
	if p.atTop {
		pl.Dropped = true
		return pl
	}
	p.newPage()
	pl.FirstPage, pl.LastPage = p.page(), p.page()
	return pl
}
