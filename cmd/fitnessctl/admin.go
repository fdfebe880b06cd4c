package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitnesshub/backend/pkg"
)

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin account helpers",
	}

	var cost int
	hashCmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash to use as FITHUB_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkg.HashPasswordWithCost(args[0], cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	hashCmd.Flags().IntVar(&cost, "cost", pkg.DefaultPasswordHashCost, "bcrypt cost")

	adminCmd.AddCommand(hashCmd)
	return adminCmd
}
