package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
	"github.com/marwanedjibo1-droid/facturio/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("serve")

		conn, err := db.Connect(cfg.Database)
		if err != nil {
			return err
		}

		// Run migrations on startup if enabled
		if cfg.App.Migrations {
			if err := db.Migrate(conn); err != nil {
				return err
			}
			log.Info().Msg("migrations completed")
		}
		if err := db.Seed(conn); err != nil {
			return err
		}

		auth.SetSecret(cfg.App.SessionSecret)

		srv := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      server.NewApp(conn),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		}

		go func() {
			log.Info().Str("port", cfg.Server.Port).Msg("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("server error")
			}
		}()

		// Wait for interrupt signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
		log.Info().Msg("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
