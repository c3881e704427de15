package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Tessera is a manifest-routed program dispatch framework",
	Long: `Tessera maps slash-delimited invocations to programs through a manifest
tree and renders results through content-negotiated views. This binary runs
the bundled demo manifest, or a manifest.yaml wired to it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("manifest", "", "Path to a manifest.yaml binding routes to the demo registry")
}
