package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dsh2dsh/imgtag"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	exitInternal     = 1
	exitInvalidInput = 2
)

func ErrorExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidInput), errors.Is(err, imgtag.ErrNoTag):
		return exitInvalidInput
	default:
		return exitInternal
	}
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, imgtag.ErrNoTag):
		return fmt.Sprintf("Error [invalid-input]: %v", err)
	default:
		return fmt.Sprintf("Error [internal]: %v", err)
	}
}

func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
