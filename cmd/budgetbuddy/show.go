package main

import (
	"fmt"

	"github.com/Veraticus/budgetbuddy/internal/cli"
	"github.com/spf13/cobra"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <profile>",
		Short: "Show a profile's totals, category breakdown and transactions",
		Args:  cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderSummary(profile))
			if categories := cli.RenderCategories(profile); categories != "" {
				fmt.Fprintln(out, categories)
			}
			fmt.Fprint(out, cli.RenderTransactions(profile.Transactions))
			return nil
		},
	}
}
