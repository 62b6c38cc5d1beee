// SPDX-License-Identifier: Unlicense OR MIT

// Command wagdemo exercises the composition core from a terminal.
//
// Usage:
//
//	wagdemo run [--config wag.toml] [--buttons 3] [--log-file demo.log]
//	wagdemo solve 300 1 1 1 1:250:250
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wagui/wag/app"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "wagdemo",
		Short:        "wagdemo drives panel layouts in the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			ctx := log.WithContext(cmd.Context(), app.NewLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.AddCommand(newSolveCmd())
	root.AddCommand(newRunCmd())
	return root
}
