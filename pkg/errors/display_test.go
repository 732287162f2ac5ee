package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format_NilError(t *testing.T) {
	f := &Formatter{Indent: "  "}
	assert.Empty(t, f.Format(nil))
}

func TestFormatter_Format_StandardError(t *testing.T) {
	f := &Formatter{UseColor: false, Indent: "  "}
	assert.Equal(t, "Error: something broke", f.Format(fmt.Errorf("something broke")))
}

func TestFormatter_Format_ReportError_NoColor(t *testing.T) {
	re := New(ErrSourceNotFound, CategoryIO, "program listing not found").
		WithContext("task", "Task 1").
		WithContext("path", "code/task1_largest.php").
		WithCause(fmt.Errorf("open code/task1_largest.php: no such file or directory")).
		WithSuggestions("Check the path")

	f := &Formatter{UseColor: false, Indent: "  "}

	want := strings.Join([]string{
		"ERROR [SOURCE_NOT_FOUND] I/O Error: program listing not found",
		"  path: code/task1_largest.php",
		"  task: Task 1",
		"  cause: open code/task1_largest.php: no such file or directory",
		"",
		"  → Check the path",
	}, "\n")
	assert.Equal(t, want, f.Format(re))
}

func TestFormatter_Format_HeaderNamesCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryConfig, "ERROR [X] Definition Error: msg"},
		{CategoryValidation, "ERROR [X] Validation Error: msg"},
		{CategoryIO, "ERROR [X] I/O Error: msg"},
		{CategoryLayout, "ERROR [X] Layout Error: msg"},
		{CategoryInternal, "ERROR [X] Internal Error: msg"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, Sprint(New("X", tt.category, "msg")))
		})
	}
}

func TestFormatter_Format_WithColor(t *testing.T) {
	re := New(ErrLayoutOverflow, CategoryLayout, "too tall").WithSuggestions("shrink it")
	f := &Formatter{UseColor: true, Indent: "  "}
	got := f.Format(re)

	assert.Contains(t, got, colorRed)
	assert.Contains(t, got, colorBold+"Layout Error:"+colorReset)
	assert.Contains(t, got, colorCyan+"→ shrink it"+colorReset)
}

func TestFormatter_Format_NoSeparatorWithoutContext(t *testing.T) {
	re := New(ErrLayoutOverflow, CategoryLayout, "too tall").WithSuggestions("a", "b")
	f := &Formatter{Indent: "  "}

	assert.Equal(t, "ERROR [LAYOUT_OVERFLOW] Layout Error: too tall\n  → a\n  → b", f.Format(re))
}

func TestFormatter_Display_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Indent: "  "}

	f.Display(nil)
	assert.Zero(t, buf.Len())

	f.Display(New(ErrRenderFailed, CategoryInternal, "engine failed"))
	assert.Equal(t, "ERROR [RENDER_FAILED] Internal Error: engine failed\n", buf.String())
}

func TestSprint_NoColor(t *testing.T) {
	got := Sprint(New(ErrOutputWriteFailed, CategoryIO, "cannot write"))
	assert.NotContains(t, got, "\033[")
}

func TestCategoryLabel(t *testing.T) {
	tests := map[Category]string{
		CategoryConfig:     "Definition Error",
		CategoryValidation: "Validation Error",
		CategoryIO:         "I/O Error",
		CategoryLayout:     "Layout Error",
		CategoryInternal:   "Internal Error",
		Category("other"):  "Error",
	}
	for cat, want := range tests {
		assert.Equal(t, want, CategoryLabel(cat), "category %q", cat)
	}
}

func TestIsTTY_NilFile(t *testing.T) {
	assert.False(t, IsTTY(nil))
}
