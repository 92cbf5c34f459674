package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		color.NoColor = true
	case force:
		color.NoColor = false
	}
}

// C paints s with c, or returns it unchanged when c is nil or color is off.
func C(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func OK(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Success, symCheck+" "+msg)) }

func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Error, symCross+" "+msg)) }

// Hint prints a muted follow-up line.
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Muted, msg)) }
