package summary

// box.go draws bordered boxes whose padding follows terminal display width.

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box-drawing characters with rounded corners.
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
)

// Box renders rows of a fixed inner width (excluding the border characters).
type Box struct {
	Width int
}

// NewBox creates a Box with the given inner width.
func NewBox(width int) *Box {
	return &Box{Width: width}
}

// Top returns the top border: ╭──────╮
func (b *Box) Top() string {
	return BoxTopLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxTopRight
}

// Mid returns a separator line: ├──────┤
func (b *Box) Mid() string {
	return BoxTeeLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxTeeRight
}

// Bottom returns the bottom border: ╰──────╯
func (b *Box) Bottom() string {
	return BoxBottomLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxBottomRight
}

// Row returns left-aligned content between vertical borders. Content wider
// than the box is truncated.
func (b *Box) Row(content string) string {
	if runewidth.StringWidth(content) > b.Width {
		content = runewidth.Truncate(content, b.Width, "…")
	}
	return BoxVertical + PadRight(content, b.Width) + BoxVertical
}

// RowCenter returns content centered between vertical borders.
func (b *Box) RowCenter(content string) string {
	w := runewidth.StringWidth(content)
	if w >= b.Width {
		return b.Row(content)
	}
	left := (b.Width - w) / 2
	return BoxVertical + strings.Repeat(" ", left) + content + strings.Repeat(" ", b.Width-w-left) + BoxVertical
}

// PadRight pads s with spaces so its display width reaches width.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
