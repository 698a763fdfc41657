// File: cmd/folio/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/folio/cmd"
	"github.com/xkilldash9x/folio/internal/observability"
)

func main() {
	os.Exit(run())
}

// run executes the command line under a signal-aware context and maps the
// outcome to an exit code. An interrupt is a clean exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer observability.Sync()

	if err := cmd.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		return 1
	}
	return 0
}
