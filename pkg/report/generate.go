package report

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/r3d91ll/labreport/pkg/export"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

// Options control a report run.
type Options struct {
	// BaseDir is the directory inputs and output are resolved against.
	// Default: the working directory.
	BaseDir string

	// Definition overrides the built-in content.
	Definition *Definition

	// Progress is called after each block is laid out.
	Progress export.ProgressFunc

	// Logger receives debug records. Default: slog.Default().
	Logger *slog.Logger

	// Version is recorded in the PDF creator metadata.
	Version string

	// CreationDate is stamped into the PDF. Zero means now.
	CreationDate time.Time
}

// Result describes a generated report.
type Result struct {
	OutputPath string
	Pages      int
	Bytes      int64
	Tasks      int
	Blocks     map[export.BlockKind]int
	Inputs     []InputFile
	Layout     *export.Layout
}

// Generate builds the report and writes it to the definition's output path
// under BaseDir, replacing any existing file. Every input is loaded before
// the output is written; on failure no partial file is left behind.
func Generate(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, werrors.IO(err, werrors.ErrOutputDirFailed, "failed to determine working directory")
		}
		baseDir = wd
	}

	def := opts.Definition
	if def == nil {
		var err error
		if def, err = Default(); err != nil {
			return nil, err
		}
	}
	logger.Debug("definition loaded", "tasks", len(def.Tasks()))

	outPath := filepath.Join(baseDir, filepath.FromSlash(def.OutputPath()))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, werrors.IO(err, werrors.ErrOutputDirFailed, "failed to create output directory").
			WithContext("path", filepath.Dir(outPath))
	}

	story, inputs, err := BuildStory(def, os.DirFS(baseDir))
	if err != nil {
		return nil, err
	}
	for _, f := range inputs.Files {
		logger.Debug("input read", "path", f.Path, "bytes", f.Bytes)
	}
	logger.Debug("story assembled", "blocks", story.Len())

	cover := def.Cover()
	cfg := export.DefaultPDFReportConfig()
	cfg.Title = cover.Title
	cfg.Subject = cover.Subtitle
	cfg.Author = cover.PreparedBy
	cfg.Keywords = cover.Keywords
	cfg.ToolVersion = opts.Version
	cfg.CreationDate = opts.CreationDate

	layout, err := export.NewPDFReportBuilder().
		WithConfig(cfg).
		WithStory(story).
		WithProgress(opts.Progress).
		WithLogger(logger).
		WriteFile(outPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return nil, werrors.IO(err, werrors.ErrOutputWriteFailed, "written report is missing").
			WithContext("path", outPath)
	}

	logger.Info("report generated", "path", outPath, "pages", layout.Pages, "bytes", info.Size())
	return &Result{
		OutputPath: outPath,
		Pages:      layout.Pages,
		Bytes:      info.Size(),
		Tasks:      len(def.Tasks()),
		Blocks:     story.Counts(),
		Inputs:     inputs.Files,
		Layout:     layout,
	}, nil
}
