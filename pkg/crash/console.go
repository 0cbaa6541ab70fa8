package crash

import (
	"io"

	"github.com/fatih/color"
)

// Console gibt formatierte Meldungen in drei Schweregraden aus
type Console interface {
	// Title für das Banner
	Title(msg string)
	// Error für die Fehlermeldung
	Error(msg string)
	// Hint für Hinweise (Log-Pfad, Meldeziel)
	Hint(msg string)
}

// ColorConsole ist die farbige Terminal-Ausgabe via fatih/color
type ColorConsole struct {
	out   io.Writer
	title *color.Color
	err   *color.Color
	hint  *color.Color
}

// NewConsole erzeugt eine ColorConsole, die nach w schreibt.
// Bei nil wird color.Output verwendet.
func NewConsole(w io.Writer) *ColorConsole {
	if w == nil {
		w = color.Output
	}
	return &ColorConsole{
		out:   w,
		title: color.New(color.FgBlue, color.Bold),
		err:   color.New(color.FgRed, color.Bold),
		hint:  color.New(color.FgYellow),
	}
}

func (c *ColorConsole) Title(msg string) { _, _ = c.title.Fprintln(c.out, msg) }

func (c *ColorConsole) Error(msg string) { _, _ = c.err.Fprintln(c.out, msg) }

func (c *ColorConsole) Hint(msg string) { _, _ = c.hint.Fprintln(c.out, msg) }
