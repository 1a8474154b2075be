// Vindinium - a client that starts training sessions on a Vindinium server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vindinium/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vindinium: %v\n", err)
		os.Exit(1)
	}
}
