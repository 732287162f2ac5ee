package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3d91ll/labreport/pkg/export"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

var fixedDate = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func generate(t *testing.T, dir string) *Result {
	t.Helper()
	res, err := Generate(Options{BaseDir: dir, Logger: quietLogger(), CreationDate: fixedDate, Version: "test"})
	require.NoError(t, err)
	return res
}

func TestGenerate(t *testing.T) {
	dir := writeInputs(t, inputFS(t))
	res := generate(t, dir)

	wantPath := filepath.Join(dir, "deliverables", "php_tasks_report.pdf")
	assert.Equal(t, wantPath, res.OutputPath)
	assert.Equal(t, 2, res.Tasks)
	assert.GreaterOrEqual(t, res.Pages, 3)
	assert.Len(t, res.Layout.Placements, 40)
	assert.Equal(t, 2, res.Blocks[export.KindImage])
	assert.Len(t, res.Inputs, 4)

	data, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, int64(len(data)), res.Bytes)
	assert.Contains(t, string(data), "/Keywords (\xfe\xff\x00P\x00H\x00P\x00,")

	leftovers, err := filepath.Glob(filepath.Join(dir, "deliverables", ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestGenerate_CoverPageThenTasks(t *testing.T) {
	res := generate(t, writeInputs(t, inputFS(t)))

	placements := res.Layout.Placements
	for _, pl := range placements[:6] {
		assert.Equal(t, 1, pl.LastPage, "cover block %d must stay on page 1", pl.Index)
	}
	assert.Equal(t, 2, placements[7].FirstPage, "first task heading starts page 2")
	assert.Greater(t, placements[24].FirstPage, placements[22].LastPage, "second task starts on a new page")
}

func TestGenerate_ListsAndCode(t *testing.T) {
	res := generate(t, writeInputs(t, inputFS(t)))

	numbered := res.Layout.ByKind(export.KindNumberedList)
	require.Len(t, numbered, 2)
	assert.Equal(t, []string{"1.", "2.", "3.", "4.", "5."}, numbered[0].Markers)
	assert.Equal(t, []string{"1.", "2.", "3."}, numbered[1].Markers)

	bullets := res.Layout.ByKind(export.KindBulletList)
	require.Len(t, bullets, 2)
	assert.Equal(t, []string{export.BulletGlyph, export.BulletGlyph}, bullets[0].Markers)

	code := res.Layout.ByKind(export.KindPreformatted)
	require.Len(t, code, 2)
	assert.Equal(t, export.ExpandTabs(strings.TrimSpace(task1Source)), strings.Join(code[0].Lines, "\n"))
	assert.Equal(t, strings.TrimSpace(task2Source), strings.Join(code[1].Lines, "\n"))
}

func TestGenerate_ImagesScaledDownOnly(t *testing.T) {
	res := generate(t, writeInputs(t, inputFS(t)))

	images := res.Layout.ByKind(export.KindImage)
	require.Len(t, images, 2)

	big := images[0].Image
	assert.InDelta(t, 396, big.Width, 1e-3)
	assert.InDelta(t, 132, big.Height, 1e-3)

	small := images[1].Image
	assert.InDelta(t, 200, small.Width, 1e-3)
	assert.InDelta(t, 120, small.Height, 1e-3)

	for _, img := range images {
		assert.LessOrEqual(t, img.Image.Width, ScreenshotMaxWidth+1e-9)
		assert.LessOrEqual(t, img.Image.Height, ScreenshotMaxHeight+1e-9)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	dir := writeInputs(t, inputFS(t))

	first := generate(t, dir)
	second := generate(t, dir)

	assert.Equal(t, first.Pages, second.Pages)
	assert.Equal(t, first.Layout, second.Layout)
	assert.Equal(t, first.Blocks, second.Blocks)
}

func TestGenerate_Progress(t *testing.T) {
	dir := writeInputs(t, inputFS(t))

	var last, total, calls int
	_, err := Generate(Options{
		BaseDir: dir,
		Logger:  quietLogger(),
		Progress: func(done, n int) {
			calls++
			last, total = done, n
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 40, calls)
	assert.Equal(t, 40, last)
	assert.Equal(t, 40, total)
}

func TestGenerate_MissingInputWritesNothing(t *testing.T) {
	for _, missing := range []string{"code/task2_reverse.php", "outputs/task1_output.png"} {
		t.Run(missing, func(t *testing.T) {
			fsys := inputFS(t)
			delete(fsys, missing)
			dir := writeInputs(t, fsys)

			_, err := Generate(Options{BaseDir: dir, Logger: quietLogger()})
			require.Error(t, err)
			assert.True(t,
				werrors.IsCode(err, werrors.ErrSourceNotFound) || werrors.IsCode(err, werrors.ErrImageNotFound),
				"unexpected error %v", err)

			_, statErr := os.Stat(filepath.Join(dir, "deliverables", "php_tasks_report.pdf"))
			assert.True(t, os.IsNotExist(statErr))

			leftovers, err := filepath.Glob(filepath.Join(dir, "deliverables", ".*.tmp"))
			require.NoError(t, err)
			assert.Empty(t, leftovers)
		})
	}
}

func TestGenerate_KeepsExistingReportOnFailure(t *testing.T) {
	fsys := inputFS(t)
	delete(fsys, "outputs/task2_output.png")
	dir := writeInputs(t, fsys)

	out := filepath.Join(dir, "deliverables", "php_tasks_report.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	_, err := Generate(Options{BaseDir: dir, Logger: quietLogger()})
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestGenerate_OutputDirBlocked(t *testing.T) {
	dir := writeInputs(t, inputFS(t))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deliverables"), []byte("file"), 0o644))

	_, err := Generate(Options{BaseDir: dir, Logger: quietLogger()})
	require.Error(t, err)
	assert.True(t, werrors.IsCode(err, werrors.ErrOutputDirFailed))
}
