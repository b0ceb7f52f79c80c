package commands

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPasswordSecurely reads a secret from the terminal without echoing it. The prompt
// goes to errOut so stdout stays clean.
func readPasswordSecurely(prompt string, errOut io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for %q: stdin is not a terminal", prompt)
	}

	fmt.Fprintf(errOut, "%s", prompt)

	bytePassword, err := term.ReadPassword(fd)

	fmt.Fprintf(errOut, "\n")

	if err != nil {
		return "", err
	}

	return string(bytePassword), nil
}
