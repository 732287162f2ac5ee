package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/r3d91ll/labreport/pkg/progress"
	"github.com/r3d91ll/labreport/pkg/report"
	"github.com/r3d91ll/labreport/pkg/summary"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labreport",
		Short: "Generate the PHP programming tasks lab report",
		Long: `labreport assembles the PHP programming tasks lab report as a PDF.

It reads the program listings under code/ and the CLI screenshots under
outputs/ in the working directory, and writes
deliverables/php_tasks_report.pdf, replacing any previous report.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if *debugLogging {
			level = slog.LevelDebug
		}
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))
	}

	return cmd
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := progress.DefaultConfig()
	cfg.Writer = cmd.ErrOrStderr()
	bar := progress.New(cfg)

	res, err := report.Generate(report.Options{
		Progress: bar.Update,
		Version:  version,
	})
	if err != nil {
		if bar.IsActive() {
			bar.Fail("Layout failed")
		}
		return err
	}
	bar.Complete("Layout complete")

	return summary.Print(cmd.OutOrStdout(), res)
}
