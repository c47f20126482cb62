package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type usageError struct {
	error
}

func newUsageError(msg string) usageError {
	return usageError{error: errors.New(msg)}
}

func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return newUsageError(fmt.Sprintf("expected %s", names))
		}
		return nil
	}
}

func minArgs(n int, names string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return newUsageError(fmt.Sprintf("expected %s", names))
		}
		return nil
	}
}

var errorWantedNoArgs = newUsageError("expected no (non-flag) arguments")

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errorWantedNoArgs
	}
	return nil
}
