package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "shim",
		Short:         "shim - daily energy score and wellness prescriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding an optional .env file")

	root.AddCommand(
		newServeCmd(&configDir),
		newScoreCmd(),
		newResetPasswordCmd(&configDir),
	)
	return root
}

var errInsecureSecret = errors.New("SECRET_KEY must be set to at least 32 characters in production")
