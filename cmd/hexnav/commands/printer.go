package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// printer writes colored CLI output to a command's streams.
type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter(out, errOut io.Writer) *printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &printer{out: out, err: errOut}
}

// Success prints a message in green with a checkmark prefix.
func (p *printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(p.out, msg)
}

func (p *printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning prints a message in yellow with a warning prefix.
func (p *printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(p.out, msg)
}

// Step prints an emphasised progress line.
func (p *printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a title, explanation and suggestions to the error stream and
// returns a short error for cobra.
func (p *printer) Error(title, explanation string, suggestions ...string) error {
	red.Fprintf(p.err, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(p.err, "%s\n", explanation)
	}
	if len(suggestions) > 0 {
		fmt.Fprintf(p.err, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(p.err, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(p.err, "Either:\n")
			for i, s := range suggestions {
				fmt.Fprintf(p.err, "  %d. %s\n", i+1, s)
			}
		}
	}
	return fmt.Errorf("%s", title)
}
