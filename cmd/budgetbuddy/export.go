package main

import (
	"fmt"

	"github.com/Veraticus/budgetbuddy/internal/cli"
	"github.com/Veraticus/budgetbuddy/internal/config"
	"github.com/Veraticus/budgetbuddy/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <profile> <file.csv>",
		Short: "Export a profile's transactions to CSV",
		Long:  `Write a profile's transactions to a CSV file with the columns date,type,category,amount,notes. An existing file is overwritten.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := a.repository()
			profiles, err := a.loadProfiles(cmd.Context(), repo)
			if err != nil {
				return err
			}

			profile, err := repo.Profile(profiles, args[0])
			if err != nil {
				return err
			}

			path := config.ExpandPath(args[1])
			if err := export.ExportProfileToCSV(profile, path); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Exported %d transactions from %q to %s", len(profile.Transactions), profile.Name, path)))
			return nil
		},
	}
}
