package main

import (
	"errors"
	"fmt"
	"os"
)

// reportedError has already been shown to the user.
type reportedError struct{ error }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
