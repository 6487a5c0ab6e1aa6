package main

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/cmxu/geoimages/cmd"
)

// Overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

// exitInterrupted follows the shell convention for a job stopped by SIGINT.
const exitInterrupted = 130

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}

func main() {
	err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if code := exitCode(err); code != 0 {
		os.Exit(code)
	}
}
