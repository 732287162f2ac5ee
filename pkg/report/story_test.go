package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3d91ll/labreport/pkg/export"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

func kinds(blocks []export.Block) []export.BlockKind {
	out := make([]export.BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind()
	}
	return out
}

func TestBuildStory_Order(t *testing.T) {
	def := mustDefault(t)
	story, inputs, err := BuildStory(def, inputFS(t))
	require.NoError(t, err)
	assert.Len(t, inputs.Files, 4)

	blocks := story.Blocks()
	require.Len(t, blocks, 40)

	cover := []export.BlockKind{
		export.KindSpacer, export.KindParagraph, export.KindParagraph, export.KindParagraph,
		export.KindSpacer, export.KindParagraph, export.KindPageBreak,
	}
	task := []export.BlockKind{
		export.KindParagraph,
		export.KindParagraph, export.KindParagraph,
		export.KindParagraph, export.KindParagraph,
		export.KindParagraph, export.KindBulletList,
		export.KindParagraph, export.KindNumberedList,
		export.KindParagraph, export.KindPreformatted,
		export.KindParagraph, export.KindParagraph, export.KindImage,
		export.KindParagraph, export.KindParagraph,
	}
	var want []export.BlockKind
	want = append(want, cover...)
	want = append(want, task...)
	want = append(want, export.KindPageBreak)
	want = append(want, task...)
	assert.Equal(t, want, kinds(blocks))

	assert.Equal(t, export.Spacer{Height: 108}, blocks[0])
	assert.Equal(t, export.Paragraph{Text: "PHP Programming Tasks Report", Style: export.StyleTitle}, blocks[1])
	assert.Equal(t, export.Paragraph{Text: "Prepared by: Automated Codex Agent", Style: export.StyleSubtitle}, blocks[3])
	assert.Equal(t, export.Spacer{Height: 144}, blocks[4])
	assert.Equal(t, export.StyleFrontBody, blocks[5].(export.Paragraph).Style)

	heading := blocks[7].(export.Paragraph)
	assert.Equal(t, "Task 1: Largest of Three Numbers Using Nested If", heading.Text)
	assert.Equal(t, export.StyleHeading, heading.Style)

	var subheadings []string
	for _, b := range blocks[8:23] {
		if p, ok := b.(export.Paragraph); ok && p.Style == export.StyleSubheading {
			subheadings = append(subheadings, p.Text)
		}
	}
	assert.Equal(t, []string{
		HeadingAim, HeadingProblem, HeadingConstraint, HeadingProcedure,
		HeadingProgram, HeadingOutput, HeadingConclusion,
	}, subheadings)

	assert.Equal(t, "Task 2: Reverse a String Using strrev()", blocks[24].(export.Paragraph).Text)
	assert.Equal(t, export.KindParagraph, blocks[len(blocks)-1].Kind(), "no page break after the last task")
}

func TestBuildStory_ListsKeepInputOrder(t *testing.T) {
	def := mustDefault(t)
	story, _, err := BuildStory(def, inputFS(t))
	require.NoError(t, err)

	blocks := story.Blocks()
	tasks := def.Tasks()

	bullets := blocks[13].(export.BulletList)
	assert.Equal(t, tasks[0].Constraints, bullets.Items)
	assert.Equal(t, 10.0, bullets.BulletSize)

	steps := blocks[15].(export.NumberedList)
	assert.Equal(t, tasks[0].Procedure, steps.Items)
	assert.Equal(t, 1, steps.Start)
}

func TestBuildStory_ProgramIsTrimmed(t *testing.T) {
	story, _, err := BuildStory(mustDefault(t), inputFS(t))
	require.NoError(t, err)

	code := story.Blocks()[17].(export.Preformatted)
	assert.Equal(t, export.StyleCode, code.Style)
	assert.Equal(t, "<?php\n$numbers = [56, 92, 37];\n\nif ($numbers[0] < $numbers[1]) {\n\techo \"second\\n\";\n}", code.Text)
}

func TestBuildStory_ScreenshotBounds(t *testing.T) {
	story, _, err := BuildStory(mustDefault(t), inputFS(t))
	require.NoError(t, err)

	img := story.Blocks()[20].(export.Image)
	assert.Equal(t, "outputs/task1_output.png", img.Name)
	assert.Equal(t, ScreenshotMaxWidth, img.MaxWidth)
	assert.Equal(t, ScreenshotMaxHeight, img.MaxHeight)

	w, h := img.Fit()
	assert.InDelta(t, 396, w, 1e-9)
	assert.InDelta(t, 132, h, 1e-9)
}

func TestBuildStory_InputErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fs map[string]string)
		code   string
		path   string
	}{
		{
			name:   "missing program",
			mutate: func(fs map[string]string) { fs["code/task1_largest.php"] = "" },
			code:   werrors.ErrSourceNotFound,
			path:   "code/task1_largest.php",
		},
		{
			name:   "missing screenshot",
			mutate: func(fs map[string]string) { fs["outputs/task2_output.png"] = "" },
			code:   werrors.ErrImageNotFound,
			path:   "outputs/task2_output.png",
		},
		{
			name:   "undecodable screenshot",
			mutate: func(fs map[string]string) { fs["outputs/task1_output.png"] = "garbage" },
			code:   werrors.ErrImageDecodeFailed,
			path:   "outputs/task1_output.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := inputFS(t)
			changes := map[string]string{}
			tt.mutate(changes)
			for name, data := range changes {
				if data == "" {
					delete(fsys, name)
					continue
				}
				fsys[name].Data = []byte(data)
			}

			_, _, err := BuildStory(mustDefault(t), fsys)
			require.Error(t, err)
			re, ok := werrors.AsReportError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, re.Code)
			assert.Equal(t, tt.path, re.Context["path"])
			assert.NotEmpty(t, re.Context["task"])
		})
	}
}
