package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/perch-wm/perch/internal/mcp"
)

func runMCP(args []string) int {
	if len(args) < 1 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stdout, "Usage: perch mcp serve")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Starts an MCP server on stdio exposing window-management tools.")
		fmt.Fprintln(os.Stdout, "Requires a running perch daemon.")
		if len(args) < 1 {
			return 2
		}
		return 0
	}

	if args[0] != "serve" {
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n", args[0])
		return 2
	}

	server, err := mcp.NewServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
