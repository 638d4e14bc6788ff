package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/gemini-image-studio/internal/cli"
	"github.com/shouni/gemini-image-studio/pkg/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cli.NewApp(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", domain.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
