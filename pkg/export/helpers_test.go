package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// pngBytes encodes an opaque w x h PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 80, B: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testImage(t *testing.T, name string, w, h int, maxW, maxH float64) Image {
	t.Helper()
	img, err := NewImage(name, pngBytes(t, w, h), maxW, maxH)
	require.NoError(t, err)
	return img
}

// utf16BE encodes ASCII s the way fpdf writes UTF-8 metadata strings.
func utf16BE(s string) string {
	var sb strings.Builder
	sb.WriteString("\xfe\xff")
	for i := 0; i < len(s); i++ {
		sb.WriteByte(0)
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "lorem"
	}
	return strings.Join(parts, " ")
}

// build renders blocks with an uncompressed default config.
func build(t *testing.T, blocks ...Block) ([]byte, *Layout, error) {
	t.Helper()
	cfg := DefaultPDFReportConfig()
	cfg.Compress = false
	return NewPDFReportBuilder().
		WithConfig(cfg).
		WithStory(NewStory().Append(blocks...)).
		Build()
}

func mustBuild(t *testing.T, blocks ...Block) *Layout {
	t.Helper()
	data, layout, err := build(t, blocks...)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.Len(t, layout.Placements, len(blocks))
	return layout
}
