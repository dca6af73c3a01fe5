// Package export writes profile transactions to tabular files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/budgetbuddy/internal/model"
)

// Header is the column layout of exported CSV files.
var Header = []string{"date", "type", "category", "amount", "notes"}

// ExportProfileToCSV writes the profile's transactions to path, replacing any existing file.
func ExportProfileToCSV(profile *model.Profile, path string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV file: %w", closeErr)
		}
	}()

	return WriteProfileCSV(f, profile)
}

// WriteProfileCSV writes a header row and one row per transaction, in entry order.
func WriteProfileCSV(w io.Writer, profile *model.Profile) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, t := range profile.Transactions {
		record := []string{
			t.Date,
			t.Kind.String(),
			t.Category,
			FormatAmount(t.Amount),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// FormatAmount renders an amount in its shortest exact decimal form,
// always with a fractional part (200 becomes "200.0").
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
