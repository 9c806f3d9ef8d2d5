package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitInvalid = 1 // A catalog file failed validation
	ExitError   = 2 // Configuration or runtime error
)

// InvalidCatalogError indicates that a catalog file was read successfully
// but does not describe a valid catalog.
type InvalidCatalogError struct {
	Path     string
	Problems []string
}

func (e *InvalidCatalogError) Error() string {
	return fmt.Sprintf("%s: %d validation problem(s)", e.Path, len(e.Problems))
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var invalid *InvalidCatalogError
		if errors.As(err, &invalid) {
			os.Exit(ExitInvalid)
		}

		os.Exit(ExitError)
	}
}
