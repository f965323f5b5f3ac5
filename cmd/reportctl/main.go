package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shiftdesk/internal/bootstrap"
	"shiftdesk/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		OpenSource: bootstrap.OpenSource,
		OpenRedis:  bootstrap.OpenRedis,
	}
	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
