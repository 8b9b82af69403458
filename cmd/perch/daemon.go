package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/perch-wm/perch/internal/config"
	"github.com/perch-wm/perch/internal/daemon"
	"github.com/perch-wm/perch/internal/ipc"
	"github.com/perch-wm/perch/internal/x11"
)

func runDaemon() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevelFromEnv(),
	}))

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to X11: %v", err)
	}
	defer conn.Close()

	d := daemon.New(conn, cfg, logger)

	server, err := ipc.NewServer(d.Engine())
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer server.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := d.Run(ctx); err != nil {
		log.Fatalf("Daemon error: %v", err)
	}
}

func logLevelFromEnv() slog.Level {
	switch os.Getenv("PERCH_LOG") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runReload(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println("Configuration reloaded")
	return 0
}

func runStatus(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Daemon running: %v\n", status.DaemonRunning)
	fmt.Printf("Monitors:       %d\n", status.MonitorCount)
	fmt.Printf("Workspaces:     %d\n", status.WorkspaceCount)
	fmt.Printf("Windows:        %d\n", status.WindowCount)
	fmt.Printf("Uptime:         %ds\n", status.UptimeSeconds)
	return 0
}
