// Package progress renders a terminal progress bar for report layout.
// A Bar's Update method has the export.ProgressFunc signature, so it can be
// handed straight to the PDF builder.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI escape sequences for terminal control.
const (
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	carriageReturn = "\r"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolSuccess = "✓"
	symbolFailure = "✗"
)

// Unicode block characters for the bar.
const (
	barFilled = "█"
	barEmpty  = "░"
)

// Config holds configuration options for a progress bar.
type Config struct {
	// Message is the text displayed before the bar.
	Message string

	// Width is the width of the bar in characters.
	// Defaults to 20 if not specified or <= 0.
	Width int

	// ShowPercentage displays the percentage complete (e.g., "40%").
	ShowPercentage bool

	// ShowCount displays current/total count (e.g., "(8/20)").
	ShowCount bool

	// ShowElapsed displays elapsed time since the first update.
	ShowElapsed bool

	// Writer is the output destination.
	// Defaults to os.Stderr if not specified.
	Writer io.Writer

	// IsTTY overrides terminal detection on Writer.
	// Without a terminal the bar prints one plain line per 10% of progress.
	IsTTY *bool
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		Message:        "Laying out",
		Width:          20,
		ShowPercentage: true,
		ShowCount:      true,
		ShowElapsed:    true,
		Writer:         os.Stderr,
	}
}

// Bar displays block layout progress.
type Bar struct {
	mu sync.Mutex

	config Config
	isTTY  bool

	current   int
	total     int
	startTime time.Time
	active    bool

	// lastOutput is the length of the last inline render, for clearing.
	lastOutput int
}

// New creates a progress bar. Unset fields take their defaults.
func New(config Config) *Bar {
	if config.Width <= 0 {
		config.Width = 20
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	isTTY := isTerminalWriter(config.Writer)
	if config.IsTTY != nil {
		isTTY = *config.IsTTY
	}

	return &Bar{config: config, isTTY: isTTY}
}

func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsTTY reports whether the bar renders inline.
func (b *Bar) IsTTY() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isTTY
}

// Current returns the last reported count.
func (b *Bar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Total returns the last reported total.
func (b *Bar) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// IsActive returns true between the first Update and Complete or Fail.
func (b *Bar) IsActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Update records that done of total items are finished. The first call
// starts the bar. done is clamped to [0, total].
func (b *Bar) Update(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if total <= 0 {
		return
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}

	if !b.active {
		b.active = true
		b.startTime = time.Now()
		b.current = 0
		if b.isTTY {
			fmt.Fprint(b.config.Writer, hideCursor)
		}
	}

	old := b.current
	b.current = done
	b.total = total

	if b.isTTY {
		b.clearAndWrite(b.buildOutput())
		return
	}

	// Plain output: one line each time another tenth is crossed.
	if (done*10)/total > (old*10)/total || (done == total && old != total) {
		fmt.Fprintln(b.config.Writer, b.buildOutput())
	}
}

// Complete stops the bar and prints a success line.
func (b *Bar) Complete(message string) {
	b.finish(message, symbolSuccess, colorGreen)
}

// Fail stops the bar and prints a failure line.
func (b *Bar) Fail(message string) {
	b.finish(message, symbolFailure, colorRed)
}

func (b *Bar) finish(message, symbol, color string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if message == "" {
		message = b.config.Message + " complete"
	}

	if b.isTTY && b.active {
		b.clearLine()
		fmt.Fprint(b.config.Writer, showCursor)
	}
	b.active = false

	var elapsed string
	if b.config.ShowElapsed && !b.startTime.IsZero() {
		elapsed = " " + formatElapsed(time.Since(b.startTime))
	}

	if b.isTTY {
		fmt.Fprintf(b.config.Writer, "%s%s%s %s%s\n", color, symbol, colorReset, message, elapsed)
		return
	}
	fmt.Fprintf(b.config.Writer, "%s %s%s\n", symbol, message, elapsed)
}

// buildOutput renders e.g. "Laying out [████████░░░░░░░░░░░░] 40% (16/40) (0.2s)".
// Caller must hold the mutex.
func (b *Bar) buildOutput() string {
	var parts []string

	if b.config.Message != "" {
		parts = append(parts, b.config.Message)
	}
	parts = append(parts, b.buildBar())

	if b.config.ShowPercentage {
		pct := 0.0
		if b.total > 0 {
			pct = float64(b.current) / float64(b.total) * 100
		}
		parts = append(parts, fmt.Sprintf("%.0f%%", pct))
	}
	if b.config.ShowCount {
		parts = append(parts, fmt.Sprintf("(%d/%d)", b.current, b.total))
	}
	if b.config.ShowElapsed && !b.startTime.IsZero() {
		parts = append(parts, formatElapsed(time.Since(b.startTime)))
	}

	return strings.Join(parts, " ")
}

// Caller must hold the mutex.
func (b *Bar) buildBar() string {
	width := b.config.Width

	filled := 0
	if b.total > 0 {
		filled = min(max((b.current*width)/b.total, 0), width)
	}

	return "[" + strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled) + "]"
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}

// Caller must hold the mutex.
func (b *Bar) clearAndWrite(output string) {
	b.clearLine()
	fmt.Fprint(b.config.Writer, output)
	b.lastOutput = len(output)
}

// Caller must hold the mutex.
func (b *Bar) clearLine() {
	if b.lastOutput > 0 {
		spaces := strings.Repeat(" ", b.lastOutput)
		fmt.Fprint(b.config.Writer, carriageReturn+spaces+carriageReturn)
		b.lastOutput = 0
	}
}
