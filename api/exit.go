package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case KindOf(err) == KindConfiguration:
		return 2
	}
	return 1
}

// HandleExit prints the error message, and nothing else, then exits
func HandleExit(w io.Writer, err error) {

	if err != nil {
		fmt.Fprintln(w, err.Error())
	}

	os.Exit(ExitCode(err))
}
