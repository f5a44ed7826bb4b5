package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ue4-rocket-build/ue4rb/internal/interfaces/cli"
	"github.com/ue4-rocket-build/ue4rb/internal/interfaces/di"
)

func main() {
	container, err := di.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// RunUAT shares our terminal; on Ctrl-C it is interrupted through ctx and
	// we exit once it has stopped
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		container.Logger.Warn("Received shutdown signal, stopping RunUAT...", "signal", sig.String())
		cancel()
	}()

	code := cli.Execute(ctx, container.GetCLIContainer(), os.Args[1:])
	signal.Stop(sigChan)
	cancel()
	os.Exit(code)
}
