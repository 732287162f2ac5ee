// Package summary prints the boxed overview shown after a report is generated.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/r3d91ll/labreport/pkg/export"
	"github.com/r3d91ll/labreport/pkg/report"
)

const (
	// MinWidth is the narrowest inner width a summary box is drawn with.
	MinWidth = 36
	// MaxWidth caps the box; longer rows are truncated.
	MaxWidth = 96

	labelWidth = 15
)

var printer = message.NewPrinter(language.English)

// Field is one labelled summary row.
type Field struct {
	Label string
	Value string
}

// Fields returns the rows describing res, in display order. Block kinds
// that do not occur in the report are omitted.
func Fields(res *report.Result) []Field {
	fields := []Field{
		{Label: "Output", Value: res.OutputPath},
		{Label: "Pages", Value: printer.Sprintf("%d", res.Pages)},
		{Label: "Size", Value: printer.Sprintf("%d bytes", res.Bytes)},
		{Label: "Tasks", Value: printer.Sprintf("%d", res.Tasks)},
	}
	for _, kind := range export.AllKinds() {
		if n := res.Blocks[kind]; n > 0 {
			fields = append(fields, Field{Label: kindLabel(kind), Value: printer.Sprintf("%d", n)})
		}
	}
	return fields
}

func kindLabel(kind export.BlockKind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}

// Render draws the summary box for res.
func Render(res *report.Result) string {
	fields := Fields(res)

	width := MinWidth
	for _, f := range fields {
		width = max(width, labelWidth+runewidth.StringWidth(f.Value)+2)
	}
	width = min(width, MaxWidth)

	box := NewBox(width)
	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	line(box.Top())
	line(box.RowCenter("Report generated"))
	line(box.Mid())
	for i, f := range fields {
		if i == 4 {
			line(box.Mid())
		}
		line(box.Row(" " + PadRight(f.Label, labelWidth-1) + f.Value))
	}
	line(box.Bottom())
	return sb.String()
}

// Print writes the summary box for res to w.
func Print(w io.Writer, res *report.Result) error {
	_, err := fmt.Fprint(w, Render(res))
	return err
}
