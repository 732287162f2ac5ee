package export

// ProgressFunc is called after each block is laid out.
type ProgressFunc func(done, total int)

// Rect is a rectangle in page coordinates, origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Placement records where the layout engine put one block.
type Placement struct {
	// Index is the block's position in the story.
	Index int
	Kind  BlockKind

	// FirstPage and LastPage are 1-based. Both are zero for a dropped block.
	FirstPage int
	LastPage  int

	// Dropped is set for spacers that did not fit and page breaks on an empty page.
	Dropped bool

	// Lines holds the rendered text lines of paragraphs and preformatted blocks.
	Lines []string

	// Markers and Items hold list bullets ("•", "1.", ...) and the rendered
	// lines of each list item.
	Markers []string
	Items   [][]string

	// Image is the drawn image rectangle on LastPage.
	Image *Rect
}

// Layout is the result of rendering a story.
type Layout struct {
	Pages      int
	Placements []Placement
}

// ByKind returns the placements of the given kind in story order.
func (l *Layout) ByKind(kind BlockKind) []Placement {
	var out []Placement
	for _, p := range l.Placements {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Counts returns the number of placements of each kind.
func (l *Layout) Counts() map[BlockKind]int {
	counts := make(map[BlockKind]int)
	for _, p := range l.Placements {
		counts[p.Kind]++
	}
	return counts
}

// PagesOf returns the distinct pages touched by non-dropped blocks of the
// given kind.
func (l *Layout) PagesOf(kind BlockKind) []int {
	seen := make(map[int]bool)
	var pages []int
	for _, p := range l.ByKind(kind) {
		if p.Dropped {
			continue
		}
		for pg := p.FirstPage; pg <= p.LastPage; pg++ {
			if !seen[pg] {
				seen[pg] = true
				pages = append(pages, pg)
			}
		}
	}
	return pages
}
