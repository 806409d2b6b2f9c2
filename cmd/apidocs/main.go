package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/apidocs/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "apidocs",
	Short:         "Generate and preview API reference pages",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cfg = config.Load()
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	rootCmd.AddCommand(generateCmd(), submoduleCmd(), serveCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("apidocs failed", "error", err)
		cancel()
		os.Exit(1)
	}
}
