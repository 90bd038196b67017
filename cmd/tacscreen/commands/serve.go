package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sehyunkim/tacscreen/internal/api"
	"github.com/sehyunkim/tacscreen/internal/api/handlers"
	"github.com/sehyunkim/tacscreen/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health       - Health check
  GET  /api/profile  - Active rule catalogue
  POST /api/screen   - Run a screening pass

Example:
  go run ./cmd/tacscreen serve
  go run ./cmd/tacscreen serve --port 8086`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	log := newLogger(cfg)

	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	scr, cleanup, err := buildScreener(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	screenHandler := handlers.NewScreenHandler(scr, prof, cfg.Screener.RunDeadline, log)
	router := api.NewRouter(screenHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/profile")
	fmt.Println("  POST /api/screen")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
