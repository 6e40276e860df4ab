package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/oksasatya/go-project-marketplace/internal/cli"
)

func main() {
	server := os.Getenv("MARKETCTL_SERVER")
	app, err := cli.NewApp(server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
