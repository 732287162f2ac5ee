package report

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/r3d91ll/labreport/pkg/export"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

// Section headings within a task.
const (
	HeadingAim        = "AIM"
	HeadingProblem    = "Problem Statement"
	HeadingConstraint = "Constraints"
	HeadingProcedure  = "Procedure"
	HeadingProgram    = "Program"
	HeadingOutput     = "Output"
	HeadingConclusion = "Conclusion"
)

// ListBulletSize is the font size of list bullets and numbers.
const ListBulletSize = 10

var (
	coverTopSpace = export.PDFPointsFromInches(1.5)
	coverGapSpace = export.PDFPointsFromInches(2)

	// Screenshots are scaled down to fit within these bounds.
	ScreenshotMaxWidth  = export.PDFPointsFromInches(5.5)
	ScreenshotMaxHeight = export.PDFPointsFromInches(3.5)
)

// InputFile records one input read from the base directory.
type InputFile struct {
	Path  string
	Bytes int
}

// Inputs holds every task's program text and screenshot, loaded up front.
type Inputs struct {
	Sources map[string]string
	Images  map[string]export.Image
	Files   []InputFile
}

// LoadInputs reads the program listing and screenshot of every task from fsys.
func LoadInputs(def *Definition, fsys fs.FS) (*Inputs, error) {
	in := &Inputs{
		Sources: make(map[string]string),
		Images:  make(map[string]export.Image),
	}
	for _, task := range def.Tasks() {
		if _, ok := in.Sources[task.Program]; !ok {
			data, err := readInput(fsys, task.Program, werrors.ErrSourceNotFound, werrors.ErrSourceReadFailed, "program listing", task.Name)
			if err != nil {
				return nil, err
			}
			in.Sources[task.Program] = string(data)
			in.Files = append(in.Files, InputFile{Path: task.Program, Bytes: len(data)})
		}

		if _, ok := in.Images[task.Screenshot]; !ok {
			data, err := readInput(fsys, task.Screenshot, werrors.ErrImageNotFound, werrors.ErrImageDecodeFailed, "screenshot", task.Name)
			if err != nil {
				return nil, err
			}
			img, err := export.NewImage(task.Screenshot, data, ScreenshotMaxWidth, ScreenshotMaxHeight)
			if err != nil {
				return nil, werrors.IO(err, werrors.ErrImageDecodeFailed, "screenshot is not a PNG, JPEG or GIF image").
					WithContext("path", task.Screenshot).
					WithContext("task", task.Name)
			}
			in.Images[task.Screenshot] = img
			in.Files = append(in.Files, InputFile{Path: task.Screenshot, Bytes: len(data)})
		}
	}
	return in, nil
}

func readInput(fsys fs.FS, name, notFound, readFailed, what, task string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path.Clean(name))
	if err == nil {
		return data, nil
	}
	code, msg := readFailed, what+" could not be read"
	if errors.Is(err, fs.ErrNotExist) {
		code, msg = notFound, what+" not found"
	}
	return nil, werrors.IO(err, code, msg).
		WithContext("path", name).
		WithContext("task", task)
}

// BuildStory loads every input from fsys and assembles the report's block list.
func BuildStory(def *Definition, fsys fs.FS) (*export.Story, *Inputs, error) {
	in, err := LoadInputs(def, fsys)
	if err != nil {
		return nil, nil, err
	}
	return StoryFromInputs(def, in), in, nil
}

// StoryFromInputs assembles the cover page followed by one section per task.
func StoryFromInputs(def *Definition, in *Inputs) *export.Story {
	story := export.NewStory()
	cover := def.Cover()

	story.Append(
		export.Spacer{Height: coverTopSpace},
		export.Paragraph{Text: cover.Title, Style: export.StyleTitle},
		export.Paragraph{Text: cover.Subtitle, Style: export.StyleSubtitle},
		export.Paragraph{Text: "Prepared by: " + cover.PreparedBy, Style: export.StyleSubtitle},
		export.Spacer{Height: coverGapSpace},
		export.Paragraph{Text: cover.Introduction, Style: export.StyleFrontBody},
		export.PageBreak{},
	)

	tasks := def.Tasks()
	for i, task := range tasks {
		appendTask(story, task, def.ScreenshotCaption(), in)
		if i != len(tasks)-1 {
			story.Append(export.PageBreak{})
		}
	}
	return story
}

func subheading(text string) export.Paragraph {
	return export.Paragraph{Text: text, Style: export.StyleSubheading}
}

func body(text string) export.Paragraph {
	return export.Paragraph{Text: text, Style: export.StyleBody}
}

func appendTask(story *export.Story, task Task, caption string, in *Inputs) {
	story.Append(
		export.Paragraph{Text: task.Name, Style: export.StyleHeading},

		subheading(HeadingAim),
		body(task.Aim),

		subheading(HeadingProblem),
		body(task.Problem),

		subheading(HeadingConstraint),
		export.BulletList{Items: task.Constraints, Style: export.StyleBody, BulletSize: ListBulletSize},

		subheading(HeadingProcedure),
		export.NumberedList{Items: task.Procedure, Style: export.StyleBody, Start: 1, BulletSize: ListBulletSize},

		subheading(HeadingProgram),
		export.Preformatted{Text: strings.TrimSpace(in.Sources[task.Program]), Style: export.StyleCode},

		subheading(HeadingOutput),
		body(caption),
		in.Images[task.Screenshot],

		subheading(HeadingConclusion),
		body(task.Conclusion),
	)
}
