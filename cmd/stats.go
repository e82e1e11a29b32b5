package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penmark/penmark/internal/config"
	"github.com/penmark/penmark/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display the number of registered users and published articles.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		articles, err := db.CountArticles(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count articles: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Users: %d\n", users)
		fmt.Printf("Articles: %d\n", articles)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
