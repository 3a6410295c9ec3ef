package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fatali-fataliyev/event_finance/api"
	"github.com/fatali-fataliyev/event_finance/internal/auth"
	"github.com/fatali-fataliyev/event_finance/logging"
	"github.com/spf13/cobra"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "Port to listen on (overrides APP_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logging.Logger.Info("application starting...")

	tracker, closeStorage, err := openTracker(context.Background())
	if err != nil {
		logging.Logger.Errorf("failed to initialize storage: %v", err)
		return err
	}
	defer closeStorage()

	authenticator := auth.NewAuthenticator(cfg.App.AdminTokenHash)
	if !authenticator.Enabled() {
		logging.Logger.Warn("ADMIN_TOKEN_HASH is not set, the admin API accepts every request")
	}

	port := cfg.App.Port
	if flagPort != "" {
		port = flagPort
	}
	if port == "" {
		logging.Logger.Info("APP_PORT is not set, using default port 8080")
		port = "8080"
	}

	server := api.NewApi(tracker, authenticator)
	fmt.Println("Starting server on port: ", port)
	if err := http.ListenAndServe(":"+port, server.Routes()); err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return err
	}
	return nil
}
