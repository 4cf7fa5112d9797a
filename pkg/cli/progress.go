package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mistops/mistctl/pkg/util"
)

// Progress receives lifecycle callbacks while a batch runs. Implementations
// must tolerate SetTotal(0) and never being incremented.
type Progress interface {
	// Title prints a section banner.
	Title(text string)
	// SetTotal fixes the number of steps the bar counts toward.
	SetTotal(total int)
	// Step announces the step about to run.
	Step(message string)
	// Success completes a step and advances the bar.
	Success(message string)
	// Failure completes a step as failed and advances the bar.
	Failure(message string)
	// End finishes the bar, drawing it full.
	End()
}

// consoleProgress renders a text progress bar on a terminal:
//
//	Progress: [███████████........................]  12/34
//
// When the writer is not a terminal (pipes, CI), the bar is suppressed and
// only step outcomes are printed, one append-only line each.
type consoleProgress struct {
	w        io.Writer
	terminal bool
	barSize  int
	total    int
	count    int
}

// NewProgress creates a Progress writing to stdout, detecting whether
// stdout is a terminal.
func NewProgress() Progress {
	return &consoleProgress{
		w:        os.Stdout,
		terminal: term.IsTerminal(int(os.Stdout.Fd())),
		barSize:  55,
	}
}

// NewProgressTo creates a Progress writing to w. interactive enables the
// rewriting bar; tests and pipes want it off.
func NewProgressTo(w io.Writer, interactive bool) Progress {
	return &consoleProgress{w: w, terminal: interactive, barSize: 55}
}

func (p *consoleProgress) Title(text string) {
	p.clearLine()
	fmt.Fprintln(p.w, Center(" "+text+" ", 80, '-'))
}

func (p *consoleProgress) SetTotal(total int) {
	p.total = total
	p.count = 0
	p.draw()
}

func (p *consoleProgress) Step(message string) {
	util.Debugf("%s", message)
}

func (p *consoleProgress) Success(message string) {
	util.Infof("%s: success", message)
	p.finishStep(message, CheckMark())
}

func (p *consoleProgress) Failure(message string) {
	util.Errorf("%s: failure", message)
	p.finishStep(message, CrossMark())
}

func (p *consoleProgress) End() {
	if p.total == 0 {
		return
	}
	p.count = p.total
	p.draw()
	if p.terminal {
		fmt.Fprintln(p.w)
	}
}

func (p *consoleProgress) finishStep(message, mark string) {
	p.count++
	if p.count > p.total {
		p.count = p.total
	}
	p.clearLine()
	fmt.Fprintf(p.w, "%s %s\n", DotPad(message, 70), mark)
	p.draw()
}

func (p *consoleProgress) draw() {
	if !p.terminal || p.total == 0 {
		return
	}
	filled := p.barSize * p.count / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat(".", p.barSize-filled)
	fmt.Fprintf(p.w, "Progress: [%s] %d/%d\r", bar, p.count, p.total)
}

// clearLine erases a pending bar before printing a full line over it.
func (p *consoleProgress) clearLine() {
	if !p.terminal {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.barSize+20))
}

// NopProgress discards all progress callbacks.
type NopProgress struct{}

func (NopProgress) Title(string)   {}
func (NopProgress) SetTotal(int)   {}
func (NopProgress) Step(string)    {}
func (NopProgress) Success(string) {}
func (NopProgress) Failure(string) {}
func (NopProgress) End()           {}
