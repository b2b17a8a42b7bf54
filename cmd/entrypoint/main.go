package main

import (
	"context"
	"os/signal"
	"syscall"

	// Import the cmd directory with root.go
	"github.com/redjax/sysreadout/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Call the root command
	cmd.ExecuteContext(ctx)
}
