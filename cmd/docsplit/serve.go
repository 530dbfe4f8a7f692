package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/api"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/merger"
	"github.com/dgallion1/docsplit/internal/splitter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the docsplit HTTP API",
	Long: `Serve the split, merge and analyze operations over HTTP. The server
operates on paths visible to its process; set DOCSPLIT_API_KEY to
require bearer authentication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			log.Error("invalid configuration", "error", err)
			os.Exit(1)
		}

		sp := splitter.New(log)
		mg := merger.New(log)
		srv := api.NewServer(sp, mg, log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting docsplit", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
