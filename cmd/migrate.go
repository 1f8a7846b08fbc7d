package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"vehicle-access-control/internal/storage"

	"github.com/spf13/cobra"
)

var migrateTarget int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long:  `Bring the database schema to the target version. Target -1 means the latest available migration, 0 rolls everything back.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := storage.Migrate(&cfg.Storage, migrateTarget); err != nil {
			slog.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("Migrations complete.")
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateTarget, "target", -1, "target schema version (-1 for latest)")
	rootCmd.AddCommand(migrateCmd)
}
