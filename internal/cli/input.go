package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSecretKey prompts for the store's secret access key and reads it from
// the terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetSecretKey(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter secret access key: "); err != nil {
		return "", err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
