package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"vehicle-access-control/internal/access"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <roster.csv>",
	Short: "Import vehicles from a roster CSV file",
	Long:  `Read a vehicle roster CSV (UTF-8 or UTF-16 spreadsheet export) and create a Vehicle record per row. Rows that fail are reported and skipped.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := importVehicles(ctx, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func importVehicles(ctx context.Context, path string) error {
	roster, closeRoster, err := access.OpenRoster(path)
	if err != nil {
		return err
	}
	defer closeRoster()

	store := openStorage()

	var imported, failed, line int
	for {
		line++
		vehicle, err := roster.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "row %d: %v\n", line, err)
			failed++
			continue
		}

		if err := store.CreateVehicle(ctx, vehicle); err != nil {
			fmt.Fprintf(os.Stderr, "row %d (%s): %v\n", line, vehicle.LicensePlate, err)
			failed++
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d vehicles (%s roster), %d rows failed.\n",
		imported, roster.Definition.Language, failed)
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
