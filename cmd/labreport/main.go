package main

import (
	"io"
	"os"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Report written
	ExitInputError = 1 // A program listing or screenshot is missing or unreadable
	ExitError      = 2 // Definition, layout or output failure
)

// inputCodes are the error codes reported with ExitInputError.
var inputCodes = []string{
	werrors.ErrSourceNotFound,
	werrors.ErrSourceReadFailed,
	werrors.ErrImageNotFound,
	werrors.ErrImageDecodeFailed,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	f := &werrors.Formatter{Writer: stderr, Indent: "  "}
	if file, ok := stderr.(*os.File); ok {
		f.UseColor = werrors.IsTTY(file)
	}
	f.Display(err)

	return exitCode(err)
}

func exitCode(err error) int {
	for _, code := range inputCodes {
		if werrors.IsCode(err, code) {
			return ExitInputError
		}
	}
	return ExitError
}
