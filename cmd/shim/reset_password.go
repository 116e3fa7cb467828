package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/shim/internal/cli"
	"github.com/terraincognita07/shim/internal/config"
	"github.com/terraincognita07/shim/internal/db"
)

func newResetPasswordCmd(configDir *string) *cobra.Command {
	var (
		email  string
		prompt bool
	)
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password from the command line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}
			database, err := db.Open(db.Options{Driver: cfg.DBDriver, Path: cfg.DBPath, DSN: cfg.DatabaseURL})
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			if sqlDB, err := database.DB(); err == nil {
				defer sqlDB.Close()
			}

			return cli.ResetPassword(db.NewUserRepository(database), cli.ResetPasswordOptions{
				Email:  email,
				Prompt: prompt,
				Stdin:  os.Stdin,
				Out:    cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "type the new password instead of generating one")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
