package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pipewatch/pipewatch/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	port        int
	dataDir     string
	githubToken string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook ingestion and metrics API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &server.Config{
			Port:        serveFlags.port,
			DataDir:     serveFlags.dataDir,
			GitHubToken: serveFlags.githubToken,
			Logger:      log.Logger,
		}
		srv := server.New(cfg)
		chSignal := make(chan os.Signal, 1)
		signal.Notify(chSignal, os.Interrupt, syscall.SIGTERM)

		wg := &sync.WaitGroup{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cfg.Logger.Fatal().Err(err).Msg("server error")
			}
		}()

		sig := <-chSignal
		cfg.Logger.Info().Str("signal", sig.String()).Msg("shutting down server...")
		if err := srv.Stop(context.Background()); err != nil {
			cfg.Logger.Error().Err(err).Msg("error during server shutdown")
		}

		wg.Wait()
		cfg.Logger.Info().Msg("server stopped")
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serveFlags.port, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveFlags.dataDir, "data-dir", "d", "./data", "Directory for the sqlite database")
	serveCmd.Flags().StringVar(&serveFlags.githubToken, "github-token", os.Getenv("GITHUB_TOKEN"), "Token for the GitHub jobs API")
}
