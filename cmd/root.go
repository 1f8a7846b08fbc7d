package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/storage"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	cfg      *config.Config
	provider storage.Provider
)

var rootCmd = &cobra.Command{
	Use:   "vehicle-access-control",
	Short: "Residential vehicle access control API",
	Long:  `A CRUD API gateway for a residential vehicle access control database.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize configuration
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadConfig(cfgFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Cleanup
		if provider != nil {
			provider.Close()
		}
	},
}

// openStorage initializes the storage provider for commands that need
// one. The migrate command manages its own connection instead.
func openStorage() storage.Provider {
	var err error
	provider, err = storage.NewProvider(&cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage provider", "error", err)
		os.Exit(1)
	}
	return provider
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}
