package main

import (
	"fmt"
	"os"

	"LF-ADMIN/internal/apperrors"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !apperrors.AlreadyNotified(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
