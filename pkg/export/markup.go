package export

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Run is a span of text sharing one font variant.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

func (r Run) sameFont(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Code == o.Code
}

// inlineParser only knows paragraphs, code spans and emphasis. Headings,
// lists, rules, links and the rest of the block and inline grammar are left
// as literal text.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(
		util.Prioritized(parser.NewParagraphParser(), 1000),
	),
	parser.WithInlineParsers(
		util.Prioritized(parser.NewCodeSpanParser(), 100),
		util.Prioritized(emphasisParser{}, 200),
	),
)

// ParseInline splits paragraph text into runs. _emphasis_ is italic,
// **strong** or __strong__ is bold and `code` spans are monospaced. A single
// asterisk is literal, so arithmetic such as 2*3*4 survives. Runs of
// whitespace collapse to one space; any other text comes back with its
// characters unchanged.
func ParseInline(s string) []Run {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}

	source := []byte(s)
	doc := inlineParser.Parse(text.NewReader(source))

	c := &runCollector{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Emphasis:
			delta := 1
			if !entering {
				delta = -1
			}
			if node.Level >= 2 {
				c.bold += delta
			} else {
				c.italic += delta
			}
		case *ast.CodeSpan:
			if entering {
				c.code++
			} else {
				c.code--
			}
		case *ast.Text:
			if entering {
				c.add(string(node.Segment.Value(source)))
			}
		default:
			if entering && n.Type() == ast.TypeBlock {
				c.separate()
			}
		}
		return ast.WalkContinue, nil
	})

	return c.finish()
}

type emphasisParser struct{}

func (emphasisParser) Trigger() []byte {
	return []byte{'*', '_'}
}

func (emphasisParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, emphasisDelimiters{})
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

// emphasisDelimiters pairs underscores of any length but asterisks only
// in runs of two or more.
type emphasisDelimiters struct{}

func (emphasisDelimiters) IsDelimiter(b byte) bool {
	return b == '*' || b == '_'
}

func (emphasisDelimiters) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	if opener.Char != closer.Char {
		return false
	}
	if opener.Char == '*' {
		return opener.Length >= 2 && closer.Length >= 2
	}
	return true
}

func (emphasisDelimiters) OnMatch(consumes int) ast.Node {
	return ast.NewEmphasis(consumes)
}

// PlainText returns the text of runs without markup.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type runCollector struct {
	runs   []Run
	bold   int
	italic int
	code   int
}

func (c *runCollector) add(s string) {
	if s == "" {
		return
	}
	r := Run{Text: s, Bold: c.bold > 0, Italic: c.italic > 0, Code: c.code > 0}
	if n := len(c.runs); n > 0 && c.runs[n-1].sameFont(r) {
		c.runs[n-1].Text += s
		return
	}
	c.runs = append(c.runs, r)
}

// separate inserts a space between consecutive block-level constructs.
func (c *runCollector) separate() {
	if n := len(c.runs); n > 0 && !strings.HasSuffix(c.runs[n-1].Text, " ") {
		c.add(" ")
	}
}

func (c *runCollector) finish() []Run {
	out := c.runs[:0]
	for i, r := range c.runs {
		if i == len(c.runs)-1 {
			r.Text = strings.TrimRight(r.Text, " ")
		}
		if r.Text != "" {
			out = append(out, r)
		}
	}
	return out
}
