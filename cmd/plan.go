package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/budget"
	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the reminders that would be scheduled right now",
	Long:  "Dry-run the notification planner against the current data and print the resulting intents.",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
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

	loc := cfg.Location()
	now := time.Now()
	intents := planner.PlanHeadsUp(products, settings, now, loc)

	if len(intents) == 0 {
		fmt.Println("  No reminders to schedule.")
	} else {
		t := cli.Table{
			Title:   "Planned reminders",
			Headers: []string{"Fires", "Title", "Body"},
		}
		for _, in := range intents {
			t.Rows = append(t.Rows, []string{
				in.FireAt.Format("Jan 2 15:04"),
				in.Title,
				cli.Truncate(in.Body, 48),
			})
		}
		fmt.Println(cli.RenderTable(t))
	}

	total := forecast.TotalMonthly(products)
	if budget.ShouldAlert(total, settings, now, loc) {
		in := budget.AlertIntent(total, settings, now)
		fmt.Printf("  Budget alert would fire now: %s\n", in.Body)
	}
	return nil
}
