package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/penmark/penmark/internal/api"
	"github.com/penmark/penmark/internal/config"
	"github.com/penmark/penmark/internal/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the penmark server",
	Long:  `Start the penmark server to serve articles and handle signups, logins and article publishing.`,
	Example: `penmark serve --config config.yml
penmark serve -c /path/to/config.yml --log-level debug
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
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	server := api.New(cfg, db, log.GetLevel() == log.DebugLevel)

	// Start the server in a goroutine
	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("penmark started successfully")
	<-c
	log.Info("shutting down gracefully...")

	if err := db.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
