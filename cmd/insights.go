package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Monthly spend estimate and budget status",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	products, err := st.ListProducts()
	if err != nil {
		return err
	}
	settings, err := st.Settings()
	if err != nil {
		return err
	}

	total := forecast.TotalMonthly(products)

	fmt.Println(cli.RenderTitle("Insights"))
	fmt.Println()
	fmt.Printf("  Monthly estimate: %s\n", money.Format(total, settings.Currency))
	fmt.Println()

	// Per-category breakdown, largest first.
	byCategory := make(map[model.Category]float64)
	for _, p := range products {
		byCategory[p.Category] += forecast.MonthlyCost(p)
	}
	type row struct {
		cat    model.Category
		amount float64
	}
	rows := make([]row, 0, len(byCategory))
	for cat, amount := range byCategory {
		rows = append(rows, row{cat, amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].amount > rows[j].amount })

	if len(rows) > 0 {
		t := cli.Table{
			Title:   "By category",
			Headers: []string{"Category", "Est. monthly", "Share"},
		}
		for _, r := range rows {
			share := 0.0
			if total > 0 {
				share = r.amount / total * 100
			}
			t.Rows = append(t.Rows, []string{
				string(r.cat),
				money.Format(r.amount, settings.Currency),
				fmt.Sprintf("%.0f%%", share),
			})
		}
		fmt.Println(cli.RenderTable(t))
	}

	if settings.BudgetEnabled {
		fmt.Printf("  Budget: %s\n", money.Format(settings.BudgetAmount, settings.Currency))
		if total >= settings.BudgetAmount {
			fmt.Println(cli.StatusStyle(forecast.StatusOverdue).
				Render("  Estimated spend meets or exceeds your budget"))
		} else {
			left := settings.BudgetAmount - total
			fmt.Printf("  %s under budget\n", money.Format(left, settings.Currency))
		}
	}
	return nil
}
