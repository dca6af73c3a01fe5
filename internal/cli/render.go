package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/budgetbuddy/internal/model"
)

// RenderProfileList lists profile names with their index.
func RenderProfileList(c model.Collection) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Saved profiles"))
	b.WriteString("\n")

	names := c.Names()
	if len(names) == 0 {
		b.WriteString(SubtleStyle.Render("(no profiles yet)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, name := range names {
		fmt.Fprintf(&b, "[%d] %s %s\n", i, name,
			SubtleStyle.Render(fmt.Sprintf("(%d transactions)", len(c[name].Transactions))))
	}
	return b.String()
}

// RenderTransactions renders transactions as an aligned table in entry order.
func RenderTransactions(transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return SubtleStyle.Render("(no transactions)") + "\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("#"),
		HeaderStyle.Render("date"),
		HeaderStyle.Render("type"),
		HeaderStyle.Render("category"),
		HeaderStyle.Render("amount"),
		HeaderStyle.Render("notes"))

	for i, t := range transactions {
		fmt.Fprintf(w, "[%d]\t%s\t%s\t%s\t%s\t%s\n",
			i, t.Date, t.Kind, t.Category, formatSigned(t), t.Notes)
	}
	_ = w.Flush()

	return b.String()
}

// RenderSummary renders the aggregate totals of a profile in a box.
func RenderSummary(p *model.Profile) string {
	s := p.Summary()

	balanceStyle := IncomeStyle
	if s.Balance < 0 {
		balanceStyle = ExpenseStyle
	}

	content := strings.Join([]string{
		fmt.Sprintf("Transactions: %d", s.Count),
		"Income:       " + IncomeStyle.Render(fmt.Sprintf("%.2f", s.Income)),
		"Expenses:     " + ExpenseStyle.Render(fmt.Sprintf("%.2f", s.Expense)),
		"Balance:      " + balanceStyle.Render(fmt.Sprintf("%.2f", s.Balance)),
	}, "\n")

	return RenderBox(p.Name, content)
}

// RenderCategories renders the signed total of each category.
func RenderCategories(p *model.Profile) string {
	totals := p.Categories()
	if len(totals) == 0 {
		return ""
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		HeaderStyle.Render("category"),
		HeaderStyle.Render("count"),
		HeaderStyle.Render("total"))

	for _, c := range totals {
		style := IncomeStyle
		if c.Total < 0 {
			style = ExpenseStyle
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Category, c.Count, style.Render(fmt.Sprintf("%+.2f", c.Total)))
	}
	_ = w.Flush()

	return b.String()
}

func formatSigned(t model.Transaction) string {
	if t.IsIncome() {
		return IncomeStyle.Render(fmt.Sprintf("+%.2f", t.Amount))
	}
	return ExpenseStyle.Render(fmt.Sprintf("-%.2f", t.Amount))
}
