package cmd

import (
	"fmt"

	"vehicle-access-control/internal/utils"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(utils.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
