/*
Package main is the entry point for the clack chat client.

It is responsible for loading configuration, initializing the global logging
system, dialing the chat server, wiring the frame relay and protocol session
together, and running the terminal renderer until interrupt or connection
loss.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"clack/internal/app/relay"
	"clack/internal/app/session"
	"clack/internal/app/transport"
	"clack/internal/configs"
	"clack/internal/pkg/logx"
	"clack/internal/ui"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger. The renderer owns the terminal, so logs go to
	// the configured file.
	if err := logx.InitGlobalLogger(cfg.Environment == "development", cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("server_url", cfg.ServerURL).
		Str("username", cfg.Username).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dial the chat server. The transport owns the only connection; nothing
	// below reconnects on loss.
	conn, err := transport.Dial(ctx, cfg.ServerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to connect to %s: %v\n", cfg.ServerURL, err)
		os.Exit(1)
	}

	// The relay is the single process-wide fan-out point for inbound frames.
	rel := relay.New()
	conn.Start(rel.Publish)

	// The session announces the local user as soon as it is constructed.
	sess := session.New(cfg.Username, conn)

	program := tea.NewProgram(ui.New(sess), tea.WithAltScreen())

	// Inbound frames enter the renderer's update loop as messages, so the
	// session only ever mutates on that single goroutine.
	token := rel.Subscribe(func(text string) {
		program.Send(ui.FrameMsg(text))
	})

	go func() {
		select {
		case <-conn.Done():
			program.Send(ui.DisconnectedMsg{})
		case <-ctx.Done():
			program.Quit()
		}
	}()

	_, runErr := program.Run()

	rel.Unsubscribe(token)
	conn.Close()

	if runErr != nil {
		logx.Fatal(runErr, "Renderer terminated with error")
	}

	logx.Info("Client stopped.")
}
