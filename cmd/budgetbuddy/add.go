package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/budgetbuddy/internal/cli"
	"github.com/Veraticus/budgetbuddy/internal/model"
	"github.com/Veraticus/budgetbuddy/internal/storage"
	"github.com/spf13/cobra"
)

func addCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction on a profile",
	}

	cmd.AddCommand(addTransactionCmd(a, model.KindIncome))
	cmd.AddCommand(addTransactionCmd(a, model.KindExpense))

	return cmd
}

func addTransactionCmd(a *app, kind model.Kind) *cobra.Command {
	var (
		date     string
		amount   float64
		category string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <profile>", lower(kind)),
		Short: fmt.Sprintf("Record an %s", lower(kind)),
		Example: fmt.Sprintf(`  budgetbuddy add %s janet --amount 200 --category Salary --notes "Part-time job"
  budgetbuddy add %s trip --date 2025-01-11 --amount 50 --category Food`, lower(kind), lower(kind)),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if date == "" {
				date = time.Now().Format(model.DateLayout)
			}

			tx, err := model.NewTransaction(kind, date, amount, category, notes)
			if err != nil {
				return fmt.Errorf("invalid transaction: %w", err)
			}
			if _, err := tx.ParseDate(); err != nil {
				return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
			}

			err = a.updateProfiles(cmd.Context(), func(repo *storage.Repository, profiles model.Collection) error {
				profile, err := repo.Profile(profiles, name)
				if err != nil {
					return err
				}
				profile.AddTransaction(tx)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to add %s: %w", lower(kind), err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Added %s of %.2f (%s) to %q", lower(kind), tx.Amount, tx.Category, name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (default: today)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount, without sign")
	cmd.Flags().StringVar(&category, "category", "", "category label")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func lower(kind model.Kind) string {
	if kind == model.KindIncome {
		return "income"
	}
	return "expense"
}
