// interviewd
//
// AI-driven first-round interview server: generates role-specific
// questions, processes recorded answers through a transcription, summary,
// and evaluation pipeline, and assembles recruiter reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TanmaySingh007/AI-Interview-BOT/internal/config"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/server"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "interviewd",
	Short: "AI Interview Bot server",
	Long: `interviewd runs the AI interview engine.

  interviewd serve    Start the HTTP server

Configuration comes from environment variables (or ~/.interviewd/config.env):
  OPENAI_API_KEY            enables AI generation (fallback mode otherwise)
  INTERVIEWD_ADDR           listen address (default :8080)
  INTERVIEWD_ROLES_DIR      optional YAML role catalog overlay
  INTERVIEWD_SESSION_TTL    optional session eviction age (default: none)`,
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		srv, err := server.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx)
	},
}

func init() {
	if level, err := logrus.ParseLevel(os.Getenv("INTERVIEWD_LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
