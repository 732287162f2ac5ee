package export

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

// PDFReportConfig specifies page geometry and metadata for a report.
type PDFReportConfig struct {
	// PageWidth is the page width in points (1 point = 1/72 inch).
	// Default: 595.276 (A4 width)
	PageWidth float64

	// PageHeight is the page height in points.
	// Default: 841.890 (A4 height)
	PageHeight float64

	// Margins in points (left, right, top, bottom).
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	// Title is the PDF title metadata.
	Title string

	// Author is the report author.
	Author string

	// Subject is the PDF subject metadata.
	Subject string

	// Keywords are PDF metadata keywords.
	Keywords []string

	// ToolVersion is the tool version for metadata.
	ToolVersion string

	// CreationDate is stamped into the PDF. Zero means the time of rendering.
	CreationDate time.Time

	// Compress enables stream compression.
	// Default: true
	Compress bool
}

// DefaultPDFReportConfig returns an A4 config with 0.75 inch margins.
func DefaultPDFReportConfig() *PDFReportConfig {
	return &PDFReportConfig{
		PageWidth:    A4Width,
		PageHeight:   A4Height,
		MarginLeft:   PDFPointsFromInches(0.75),
		MarginRight:  PDFPointsFromInches(0.75),
		MarginTop:    PDFPointsFromInches(0.75),
		MarginBottom: PDFPointsFromInches(0.75),
		Compress:     true,
	}
}

// FrameWidth returns the width available for content.
func (c *PDFReportConfig) FrameWidth() float64 {
	return c.PageWidth - c.MarginLeft - c.MarginRight
}

// FrameHeight returns the height available for content.
func (c *PDFReportConfig) FrameHeight() float64 {
	return c.PageHeight - c.MarginTop - c.MarginBottom
}

// Creator returns the creator string written into the PDF metadata.
func (c *PDFReportConfig) Creator() string {
	if c.ToolVersion == "" {
		return PDFProducer
	}
	return PDFProducer + " " + c.ToolVersion
}

// PDFReportBuilder renders a story into a PDF with a fluent API.
type PDFReportBuilder struct {
	config   *PDFReportConfig
	styles   *Stylesheet
	story    *Story
	progress ProgressFunc
	logger   *slog.Logger
}

// NewPDFReportBuilder creates a new PDFReportBuilder with default configuration.
func NewPDFReportBuilder() *PDFReportBuilder {
	return &PDFReportBuilder{
		config: DefaultPDFReportConfig(),
		styles: DefaultStylesheet(),
		story:  NewStory(),
		logger: slog.Default(),
	}
}

// WithConfig sets the configuration for the builder.
func (prb *PDFReportBuilder) WithConfig(config *PDFReportConfig) *PDFReportBuilder {
	if config != nil {
		prb.config = config
	}
	return prb
}

// WithStylesheet replaces the default stylesheet.
func (prb *PDFReportBuilder) WithStylesheet(styles *Stylesheet) *PDFReportBuilder {
	if styles != nil {
		prb.styles = styles
	}
	return prb
}

// WithStory sets the blocks to render.
func (prb *PDFReportBuilder) WithStory(story *Story) *PDFReportBuilder {
	if story != nil {
		prb.story = story
	}
	return prb
}

// WithProgress registers a callback invoked after each block.
func (prb *PDFReportBuilder) WithProgress(fn ProgressFunc) *PDFReportBuilder {
	prb.progress = fn
	return prb
}

// WithLogger sets the logger for debug output.
func (prb *PDFReportBuilder) WithLogger(logger *slog.Logger) *PDFReportBuilder {
	if logger != nil {
		prb.logger = logger
	}
	return prb
}

// Config returns the builder's configuration.
func (prb *PDFReportBuilder) Config() *PDFReportConfig {
	return prb.config
}

func (prb *PDFReportBuilder) newDocument() *fpdf.Fpdf {
	cfg := prb.config
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetMargins(cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight)
	pdf.SetAutoPageBreak(false, cfg.MarginBottom)
	pdf.SetCompression(cfg.Compress)
	pdf.SetCatalogSort(true)

	pdf.SetTitle(cfg.Title, true)
	pdf.SetAuthor(cfg.Author, true)
	pdf.SetSubject(cfg.Subject, true)
	pdf.SetCreator(cfg.Creator(), true)
	if len(cfg.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(cfg.Keywords, ", "), true)
	}
	if !cfg.CreationDate.IsZero() {
		pdf.SetCreationDate(cfg.CreationDate)
	}
	return pdf
}

// render lays out every block of the story onto pdf.
func (prb *PDFReportBuilder) render(pdf *fpdf.Fpdf) (*Layout, error) {
	p := newPaginator(pdf, prb.config, prb.styles)
	p.onPage = func(page int) {
		prb.logger.Debug("page started", "page", page)
	}
	p.newPage()

	blocks := prb.story.Blocks()
	for i, block := range blocks {
		pl, err := p.place(i, block)
		if err != nil {
			return nil, err
		}
		if pdf.Err() {
			return nil, werrors.Internal(pdf.Error(), werrors.ErrRenderFailed, "PDF engine failed").
				WithContext("kind", string(block.Kind()))
		}
		p.layout.Placements = append(p.layout.Placements, pl)
		if prb.progress != nil {
			prb.progress(i+1, len(blocks))
		}
	}
	return p.layout, nil
}

// Build renders the story and returns the PDF bytes with the layout trace.
func (prb *PDFReportBuilder) Build() ([]byte, *Layout, error) {
	pdf := prb.newDocument()

	layout, err := prb.render(pdf)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, nil, werrors.Internal(err, werrors.ErrRenderFailed, "failed to serialize PDF")
	}
	return buf.Bytes(), layout, nil
}

// WriteFile renders the story and atomically replaces path with the PDF.
// Nothing is written if rendering fails.
func (prb *PDFReportBuilder) WriteFile(path string) (*Layout, error) {
	data, layout, err := prb.Build()
	if err != nil {
		return nil, err
	}
	if err := WriteFileAtomic(path, data, 0o644); err != nil {
		return nil, err
	}
	prb.logger.Debug("output written", "path", path, "bytes", len(data), "pages", layout.Pages)
	return layout, nil
}
