package main

import (
	"fmt"

	"github.com/avral/tessera"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Tessera version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tessera %s\n", tessera.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
