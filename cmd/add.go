package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/category"
	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
)

var (
	flagAddPrice     float64
	flagAddLasts     int
	flagAddPurchased string
	flagAddNotes     string
	flagAddCategory  string
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a product to track",
	Long:  "Add a product. With no arguments an interactive form is shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().Float64VarP(&flagAddPrice, "price", "p", 0, "Latest purchase price")
	addCmd.Flags().IntVarP(&flagAddLasts, "lasts", "l", 7, "How many days it lasts")
	addCmd.Flags().StringVar(&flagAddPurchased, "purchased", "", "Last purchase date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&flagAddNotes, "notes", "", "Free-form notes")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Category override (default: auto)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var (
		name      string
		price     = flagAddPrice
		lastsDays = flagAddLasts
		purchased = time.Now()
		notes     = flagAddNotes
	)
	if len(args) == 1 {
		name = args[0]
	}

	if flagAddPurchased != "" {
		purchased, err = time.ParseInLocation("2006-01-02", flagAddPurchased, cfg.Location())
		if err != nil {
			return fmt.Errorf("invalid --purchased date: %w", err)
		}
	}

	if name == "" {
		name, price, lastsDays, notes, err = addForm()
		if err != nil {
			return err
		}
	}

	cat := category.Categorize(name)
	if flagAddCategory != "" {
		cat = model.ParseCategory(flagAddCategory)
	}

	p := model.NewProduct(name, price, lastsDays, purchased, notes, cat)
	if err := st.SaveProduct(p); err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	notifyDaemon(cfg)

	settings, err := st.Settings()
	if err != nil {
		return err
	}
	loc := cfg.Location()
	fmt.Printf("  Added %q (%s)\n", p.Name, p.Category)
	fmt.Printf("  Runs out %s · %s/month\n",
		cli.FormatDate(forecast.NextRunOut(p, loc)),
		money.Format(forecast.MonthlyCost(p), settings.Currency))
	fmt.Printf("  ID: %s\n", p.ID)
	return nil
}

// addForm collects product fields interactively.
func addForm() (name string, price float64, lastsDays int, notes string, err error) {
	var (
		priceStr = "0"
		lastsStr = "7"
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product name").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(&name),
			huh.NewInput().
				Title("Latest price").
				Validate(validateFloat).
				Value(&priceStr),
			huh.NewInput().
				Title("Lasts (days)").
				Validate(validateInt).
				Value(&lastsStr),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&notes),
		),
	)
	if err = form.Run(); err != nil {
		return "", 0, 0, "", err
	}

	price, _ = strconv.ParseFloat(priceStr, 64)
	lastsDays, _ = strconv.Atoi(lastsStr)
	return name, price, lastsDays, notes, nil
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}
