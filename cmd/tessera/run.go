package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/avral/tessera"
	"github.com/avral/tessera/internal/logging"
	"github.com/avral/tessera/pkg/adapters/cmdline"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [invocation] [--key value ...]",
	Short: "Dispatch one invocation from the command line",
	Long: `Runs a single invocation through the manifest and prints the rendered
response to stdout. Flags after the invocation become raw request data:

  tessera run multiply/6 --y 9
  tessera run echo --message hello --manifest manifest.yaml`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		emitter := cmdline.NewEmitter()

		// Flag parsing is disabled so --key pairs reach the request; pull
		// out the flags this command owns before handing the rest over.
		manifestPath := ""
		mock := false
		rest := make([]string, 0, len(args))
		for i := 0; i < len(args); i++ {
			switch args[i] {
			case "--manifest":
				if i+1 < len(args) {
					manifestPath = args[i+1]
					i++
				}
			case "--mock":
				mock = true
			case "--help", "-h":
				cmd.Help()
				return
			default:
				rest = append(rest, args[i])
			}
		}

		logger := logging.New(slog.LevelWarn)
		m, err := demoManifest(manifestPath, logger)
		if err != nil {
			emitter.EmitError(err)
			os.Exit(1)
		}

		app := tessera.New(m,
			tessera.WithLogger(logger),
			tessera.WithMockMode(mock),
		)

		ctrl := cmdline.NewController()
		req := cmdline.ParseArgs(rest)

		resp, err := app.Resolve(context.Background(), ctrl, req)
		if err != nil {
			emitter.EmitError(err)
			os.Exit(1)
		}
		if err := emitter.Emit(resp); err != nil {
			emitter.EmitError(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
