package main

import (
	"os"

	"github.com/nuclio/errors"
)

func main() {
	if err := newRootCommandeer().execute(os.Args[1:]); err != nil {
		errors.PrintErrorStack(os.Stderr, err, 5)
		os.Exit(1)
	}
}
