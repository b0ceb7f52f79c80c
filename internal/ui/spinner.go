package ui

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Spin runs action while showing a spinner on w. The spinner is skipped when w is not
// a terminal so redirected output stays clean.
func Spin(w io.Writer, title string, action func() error) error {
	if !IsTerminal(w) {
		return action()
	}

	loading := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	loading.Suffix = " " + title
	loading.Start()

	err := action()

	loading.Stop()

	return err
}
