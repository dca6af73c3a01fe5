package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/budgetbuddy/internal/cli"
	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/model"
	"github.com/Veraticus/budgetbuddy/internal/ofx"
	"github.com/Veraticus/budgetbuddy/internal/storage"
	"github.com/spf13/cobra"
)

func importOFXCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx <profile> <files...>",
		Short: "Import transactions from OFX/QFX files into a profile",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.
Credits are recorded as income and debits as expenses. Transactions already
present in the profile are skipped.

Examples:
  budgetbuddy import-ofx janet ~/Downloads/checking_jan.qfx
  budgetbuddy import-ofx janet ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			files, err := expandGlobs(args[1:])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			transactions := parseOFXFiles(cmd.Context(), files)
			if len(transactions) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No transactions found in any file"))
				return nil
			}

			if dryRun {
				fmt.Fprint(out, cli.RenderTransactions(transactions))
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(transactions))))
				return nil
			}

			var added int
			err = a.updateProfiles(cmd.Context(), func(repo *storage.Repository, profiles model.Collection) error {
				profile, err := repo.Profile(profiles, name)
				if err != nil {
					return err
				}
				added = ofx.Merge(profile, transactions)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to import into %q: %w", name, err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions into %q (%d duplicates skipped)",
				added, name, len(transactions)-added)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}

func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// parseOFXFiles parses every file, logging and skipping the ones that fail.
func parseOFXFiles(ctx context.Context, files []string) []model.Transaction {
	parser := ofx.NewParser()

	var all []model.Transaction
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		common.LogInfo("Processed file", common.Fields{
			"file":         filepath.Base(path),
			"transactions": len(transactions),
		})
		all = append(all, transactions...)
	}
	return all
}
