// Command behavior runs the chase demo on the behavior tree engine.
//
// Usage:
//
//	behavior run
//	behavior run --config behavior.yaml --ticks 0 --interval 500ms --monitor 127.0.0.1:8089
//	behavior describe
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
