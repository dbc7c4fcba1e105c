// Package main is the campusevents binary: the JSON API server plus the
// migration and token helpers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "campusevents"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Campus events API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd(), migrateCmd(), tokenCmd())
	return cmd
}
