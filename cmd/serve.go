package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/bookshelf/internal/api"
	"github.com/jon4hz/bookshelf/internal/catalog"
	"github.com/jon4hz/bookshelf/internal/config"
	"github.com/jon4hz/bookshelf/internal/database"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bookshelf server",
	Long:  `Start the bookshelf web server, serving the catalog, shelf and admin pages.`,
	Example: `bookshelf serve --config config.yml
bookshelf serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	books := catalog.New(cfg.GoogleBooks)

	server, err := api.New(cfg, db, books)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("bookshelf started successfully")
	<-c
	log.Info("shutting down gracefully...")
	time.Sleep(time.Second)
}
