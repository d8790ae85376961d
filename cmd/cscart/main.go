package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/deploymenttheory/go-api-sdk-cscart/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(cli.ExitCode(err))
}
