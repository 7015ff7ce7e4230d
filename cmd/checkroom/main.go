// Command checkroom runs the availability dialog for one room in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"smartbooking/internal/availability"
	"smartbooking/internal/logger"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("BOOKINGS_URL", "http://localhost:8080"), "bookings server base URL")
	room := flag.String("room", "", "room id to check")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP request timeout")
	level := flag.String("log-level", envOr("LOG_LEVEL", "warn"), "log level")
	flag.Parse()

	if *room == "" {
		fmt.Fprintln(os.Stderr, "checkroom: -room is required")
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(false, *level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "checkroom:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *server, *room, *timeout, log); err != nil {
		log.Error("availability check failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, server, room string, timeout time.Duration, log *zap.Logger) error {
	client, err := availability.NewClient(server, timeout)
	if err != nil {
		return err
	}
	token, err := client.CSRFToken(ctx)
	if err != nil {
		return fmt.Errorf("fetching csrf token: %w", err)
	}

	modal := availability.NewTerminalModal(os.Stdin, os.Stdout, server)
	out, err := availability.NewFlow(modal, client, token, log).Run(ctx, room)
	if err != nil {
		return err
	}
	log.Debug("flow finished", zap.Stringer("state", out.State), zap.Bool("dismissed", out.Dismissed()))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
