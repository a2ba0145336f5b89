// Package cmd implements the smarket CLI commands.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/config"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
	"github.com/mfigueredo/smarket/internal/store"
)

var (
	flagDBPath string
	flagSort   string
)

var rootCmd = &cobra.Command{
	Use:   "smarket",
	Short: "Grocery and household supply tracker",
	Long:  "Track what you buy, when it runs out, and what it costs per month.",
	RunE:  runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (default: XDG data dir)")
	rootCmd.Flags().StringVarP(&flagSort, "sort", "s", "name", "Sort order: name, due, category")
}

// openStore is the shared persistence path used by all commands.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	path := flagDBPath
	if path == "" {
		path = cfg.General.DBPath
	}
	if path == "" {
		path = store.DefaultPath()
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("opening store: %w", err)
	}
	return st, cfg, nil
}

func runList(_ *cobra.Command, _ []string) error {
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

	if len(products) == 0 {
		fmt.Println("  No products yet. Add one with `smarket add`.")
		return nil
	}

	loc := cfg.Location()
	now := time.Now()
	sortProducts(products, flagSort, loc)

	t := cli.Table{
		Title:   "Products",
		Headers: []string{"Name", "Category", "Price", "Runs out", "Status"},
	}
	for _, p := range products {
		days := forecast.DaysUntil(p, now, loc)
		status := forecast.StatusFor(days, settings.HeadsUpDays)
		label := cli.StatusStyle(status).Render(cli.DueLabel(days))

		t.Rows = append(t.Rows, []string{
			cli.Truncate(p.Name, 28),
			string(p.Category),
			money.Format(p.PriceLatest, settings.Currency),
			cli.FormatDate(forecast.NextRunOut(p, loc)),
			label,
		})
	}

	fmt.Println(cli.RenderTable(t))
	fmt.Printf("  %d products · est. %s/month\n",
		len(products),
		money.Format(forecast.TotalMonthly(products), settings.Currency))
	return nil
}

func sortProducts(products []model.Product, order string, loc *time.Location) {
	switch order {
	case "due":
		sort.Slice(products, func(i, j int) bool {
			return forecast.NextRunOut(products[i], loc).Before(forecast.NextRunOut(products[j], loc))
		})
	case "category":
		sort.Slice(products, func(i, j int) bool {
			if products[i].Category != products[j].Category {
				return products[i].Category < products[j].Category
			}
			return products[i].Name < products[j].Name
		})
	default:
		// store already returns name order
	}
}

// notifyDaemon pokes a running daemon to replan after a data change.
// Best-effort: a missing daemon is not an error, the next trigger catches
// up.
func notifyDaemon(cfg config.Config) {
	client := &http.Client{Timeout: time.Second}
	resp, err := client.Post("http://"+cfg.Daemon.Addr+"/v1/refresh", "text/plain", nil) //nolint:noctx // short local poke
	if err != nil {
		return
	}
	_ = resp.Body.Close()
}
