// Package export renders a story of layout blocks into a paginated PDF.
// Provides page geometry, styles, block types, inline markup, the greedy
// paginator and an atomic file writer.
package export

import (
	"fmt"
	"math"
	"strings"
)

// PDF constants for document generation.
const (
	// PDFProducer is the creator prefix embedded in PDF metadata.
	PDFProducer = "labreport"

	// A4Width and A4Height are the ISO A4 page size in points.
	A4Width  = 595.276
	A4Height = 841.890
)

// PDFColor represents an RGB color for PDF output.
type PDFColor struct {
	R, G, B float64 // Values in range [0, 1]
}

// Black is the default text color.
var Black = PDFColor{}

// HexToPDFColor converts a hex color string to PDFColor.
func HexToPDFColor(hex string) PDFColor {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return PDFColor{0, 0, 0} // Default to black on invalid input
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return PDFColor{0, 0, 0}
	}
	return PDFColor{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// RGB returns the color as 0-255 integer components.
func (c PDFColor) RGB() (r, g, b int) {
	return int(math.Round(c.R * 255)), int(math.Round(c.G * 255)), int(math.Round(c.B * 255))
}

// String returns the color as a "#rrggbb" hex string.
func (c PDFColor) String() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// PDFPointsFromInches converts inches to PDF points.
func PDFPointsFromInches(inches float64) float64 {
	return inches * 72.0
}

// roundToPrecision rounds a float64 to the specified number of decimal places.
func roundToPrecision(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(value*multiplier) / multiplier
}
