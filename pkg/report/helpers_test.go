package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const (
	task1Source = "\n<?php\n$numbers = [56, 92, 37];\n\nif ($numbers[0] < $numbers[1]) {\n\techo \"second\\n\";\n}\n\n"
	task2Source = "<?php\n$phrase = \"Hello, World\";\necho strrev($phrase) . \"\\n\";\n"
)

func screenshot(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// inputFS returns the four report inputs as an in-memory filesystem.
func inputFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"code/task1_largest.php":   {Data: []byte(task1Source)},
		"code/task2_reverse.php":   {Data: []byte(task2Source)},
		"outputs/task1_output.png": {Data: screenshot(t, 900, 300)},
		"outputs/task2_output.png": {Data: screenshot(t, 200, 120)},
	}
}

// writeInputs materializes fsys under a fresh temporary directory.
func writeInputs(t *testing.T, fsys fstest.MapFS) string {
	t.Helper()
	dir := t.TempDir()
	for name, f := range fsys {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustDefault(t *testing.T) *Definition {
	t.Helper()
	def, err := Default()
	require.NoError(t, err)
	return def
}
