package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/avral/tessera/internal/logging"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the paths the manifest exposes",
	Run: func(cmd *cobra.Command, args []string) {
		manifestPath, _ := cmd.Flags().GetString("manifest")
		tag, _ := cmd.Flags().GetString("controller")

		m, err := demoManifest(manifestPath, logging.New(slog.LevelWarn))
		if err != nil {
			fmt.Printf("Error building manifest: %v\n", err)
			os.Exit(1)
		}

		for _, url := range m.URLs(tag) {
			fmt.Println(url)
		}
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().String("controller", "http-get", "Controller tag to enumerate routes for")
}
