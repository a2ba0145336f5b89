package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/money"
)

var flagShoppingDays int

var shoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Show the shopping list: products due soon",
	RunE:  runShopping,
}

func init() {
	shoppingCmd.Flags().IntVarP(&flagShoppingDays, "days", "n", 0, "Due window in days (default: configured due-soon window)")
	rootCmd.AddCommand(shoppingCmd)
}

func runShopping(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
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

	window := flagShoppingDays
	if window <= 0 {
		window = cfg.General.DueSoonDays
	}

	loc := cfg.Location()
	now := time.Now()
	due := forecast.DueWithin(products, window, now, loc)

	if len(due) == 0 {
		fmt.Printf("  All set. Nothing due in the next %d days.\n", window)
		return nil
	}

	t := cli.Table{
		Title:   fmt.Sprintf("Shopping (next %d days)", window),
		Headers: []string{"Name", "Runs out", "Price", "Status"},
	}
	var total float64
	for _, p := range due {
		days := forecast.DaysUntil(p, now, loc)
		status := forecast.StatusFor(days, settings.HeadsUpDays)
		total += p.PriceLatest

		t.Rows = append(t.Rows, []string{
			cli.Truncate(p.Name, 28),
			cli.FormatShortDate(forecast.NextRunOut(p, loc)),
			money.Format(p.PriceLatest, settings.Currency),
			cli.StatusStyle(status).Render(cli.DueLabel(days)),
		})
	}

	fmt.Println(cli.RenderTable(t))
	fmt.Printf("  %d item(s) · about %s to restock\n", len(due), money.Format(total, settings.Currency))
	return nil
}
