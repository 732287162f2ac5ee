package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"strings"
)

// BlockKind identifies the type of a layout block.
type BlockKind string

const (
	KindParagraph    BlockKind = "paragraph"
	KindSpacer       BlockKind = "spacer"
	KindBulletList   BlockKind = "bullet_list"
	KindNumberedList BlockKind = "numbered_list"
	KindPreformatted BlockKind = "preformatted"
	KindImage        BlockKind = "image"
	KindPageBreak    BlockKind = "page_break"
)

// AllKinds returns every block kind in display order.
func AllKinds() []BlockKind {
	return []BlockKind{
		KindParagraph, KindSpacer, KindBulletList, KindNumberedList,
		KindPreformatted, KindImage, KindPageBreak,
	}
}

// Block is one renderable unit of a story.
type Block interface {
	Kind() BlockKind
}

// Paragraph is wrapped text in a named style. Text may carry inline
// emphasis, strong and code span markup.
type Paragraph struct {
	Text  string
	Style string
}

func (Paragraph) Kind() BlockKind { return KindParagraph }

// Spacer is fixed vertical space.
type Spacer struct {
	Height float64
}

func (Spacer) Kind() BlockKind { return KindSpacer }

// BulletList is a list of paragraphs each marked with a bullet.
type BulletList struct {
	Items      []string
	Style      string
	BulletSize float64
}

func (BulletList) Kind() BlockKind { return KindBulletList }

// NumberedList is a list of paragraphs numbered from Start.
type NumberedList struct {
	Items      []string
	Style      string
	Start      int
	BulletSize float64
}

func (NumberedList) Kind() BlockKind { return KindNumberedList }

// Preformatted is line-preserving monospaced text.
type Preformatted struct {
	Text  string
	Style string
}

func (Preformatted) Kind() BlockKind { return KindPreformatted }

// Image is an embedded raster image. Width and Height are the natural size
// in points (one pixel per point).
type Image struct {
	Name   string
	Data   []byte
	Format string // "png", "jpeg" or "gif"

	Width  float64
	Height float64

	// MaxWidth and MaxHeight bound the drawn size. Zero means unbounded.
	MaxWidth  float64
	MaxHeight float64
}

func (Image) Kind() BlockKind { return KindImage }

// PageBreak forces subsequent content onto a new page.
type PageBreak struct{}

func (PageBreak) Kind() BlockKind { return KindPageBreak }

// NewImage decodes the image header of data and returns an Image block bounded
// by maxWidth x maxHeight.
func NewImage(name string, data []byte, maxWidth, maxHeight float64) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, fmt.Errorf("image has empty dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return Image{
		Name:      name,
		Data:      data,
		Format:    format,
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
	}, nil
}

// Fit returns the drawn size: the natural size scaled down, never up, so it
// lies within MaxWidth x MaxHeight with the aspect ratio preserved.
func (img Image) Fit() (w, h float64) {
	return FitWithin(img.Width, img.Height, img.MaxWidth, img.MaxHeight)
}

// FitWithin scales w x h down to fit maxW x maxH. A zero bound is ignored.
func FitWithin(w, h, maxW, maxH float64) (float64, float64) {
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = maxW / w
	}
	if maxH > 0 && h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

// fpdfImageType maps a decoder format name to the fpdf image type.
func fpdfImageType(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}

// Story is the ordered list of blocks submitted to the layout engine.
type Story struct {
	blocks []Block
}

// NewStory creates an empty story.
func NewStory() *Story {
	return &Story{blocks: make([]Block, 0)}
}

// Append adds blocks to the end of the story.
func (s *Story) Append(blocks ...Block) *Story {
	s.blocks = append(s.blocks, blocks...)
	return s
}

// Blocks returns a copy of the block list.
func (s *Story) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Len returns the number of blocks.
func (s *Story) Len() int {
	return len(s.blocks)
}

// Counts returns the number of blocks of each kind.
func (s *Story) Counts() map[BlockKind]int {
	counts := make(map[BlockKind]int)
	for _, b := range s.blocks {
		counts[b.Kind()]++
	}
	return counts
}
