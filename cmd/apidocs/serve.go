package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/apidocs/internal/preview"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview generated API reference pages over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := preview.NewServer(cfg.DocsRoutesDir(), log)
			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			go func() {
				<-cmd.Context().Done()
				log.Info("shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("starting preview", "port", cfg.Port, "dir", cfg.DocsRoutesDir())
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	cmd.Flags().StringVar(&cfg.PackagesDir, "packages-dir", cfg.PackagesDir, "monorepo packages directory")
	return cmd
}
