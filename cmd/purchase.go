package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/forecast"
)

var (
	flagPurchasePrice float64
	flagPurchaseAll   bool
)

var purchaseCmd = &cobra.Command{
	Use:     "purchase [id|name]",
	Aliases: []string{"buy"},
	Short:   "Log a purchase, resetting the run-out clock",
	Long:    "Log a purchase. Bumps the last-purchase date to now; --price records a new latest price.",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runPurchase,
}

func init() {
	purchaseCmd.Flags().Float64VarP(&flagPurchasePrice, "price", "p", -1, "New latest price observed")
	purchaseCmd.Flags().BoolVar(&flagPurchaseAll, "all-due", false, "Mark every due-soon product purchased")
	rootCmd.AddCommand(purchaseCmd)
}

func runPurchase(_ *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	now := time.Now()
	loc := cfg.Location()

	if flagPurchaseAll {
		settings, err := st.Settings()
		if err != nil {
			return err
		}
		products, err := st.ListProducts()
		if err != nil {
			return err
		}

		due := forecast.DueWithin(products, settings.HeadsUpDays, now, loc)
		for _, p := range due {
			p.LastPurchasedAt = now
			if err := st.SaveProduct(p); err != nil {
				return fmt.Errorf("saving %q: %w", p.Name, err)
			}
		}
		notifyDaemon(cfg)
		fmt.Printf("  Marked %d due product(s) purchased\n", len(due))
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("specify a product or use --all-due")
	}

	p, err := st.FindProduct(args[0])
	if err != nil {
		return err
	}

	p.LastPurchasedAt = now
	if flagPurchasePrice >= 0 {
		p.PriceLatest = flagPurchasePrice
	}
	if err := st.SaveProduct(p); err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	notifyDaemon(cfg)

	fmt.Printf("  Logged purchase of %q\n", p.Name)
	fmt.Printf("  Next run-out: %s\n", cli.FormatDate(forecast.NextRunOut(p, loc)))
	return nil
}
