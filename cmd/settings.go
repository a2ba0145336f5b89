package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
)

var (
	flagSetCurrency     string
	flagSetHeadsUp      int
	flagSetReminderHour int
	flagSetBudget       float64
	flagSetBudgetOff    bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change app settings",
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetCurrency, "currency", "", "Display currency: COP or USD")
	settingsCmd.Flags().IntVar(&flagSetHeadsUp, "heads-up", -1, "Days before run-out to remind")
	settingsCmd.Flags().IntVar(&flagSetReminderHour, "reminder-hour", -1, "Local hour (0-23) reminders fire")
	settingsCmd.Flags().Float64Var(&flagSetBudget, "budget", -1, "Monthly budget amount (enables budget alerts)")
	settingsCmd.Flags().BoolVar(&flagSetBudgetOff, "budget-off", false, "Disable budget alerts")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	settings, err := st.Settings()
	if err != nil {
		return err
	}

	changed := false

	if flagSetCurrency != "" {
		settings.Currency = model.ParseCurrency(flagSetCurrency)
		changed = true
	}
	if flagSetHeadsUp >= 0 {
		settings.HeadsUpDays = flagSetHeadsUp
		changed = true
	}
	if flagSetReminderHour >= 0 {
		if flagSetReminderHour > 23 {
			return fmt.Errorf("reminder hour must be 0-23")
		}
		settings.ReminderHour = flagSetReminderHour
		changed = true
	}
	if flagSetBudget >= 0 {
		settings.BudgetAmount = flagSetBudget
		settings.BudgetEnabled = true
		changed = true
	}
	if flagSetBudgetOff {
		settings.BudgetEnabled = false
		changed = true
	}

	if changed {
		if err := st.SaveSettings(settings); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		// Reminder-hour and heads-up changes reschedule everything.
		notifyDaemon(cfg)
		fmt.Println("  Settings saved.")
		fmt.Println()
	}

	fmt.Println("  [Settings]")
	fmt.Printf("    Currency:      %s\n", settings.Currency)
	fmt.Printf("    Heads-up days: %d\n", settings.HeadsUpDays)
	fmt.Printf("    Reminder hour: %02d:00\n", settings.ReminderHour)
	if settings.BudgetEnabled {
		fmt.Printf("    Budget:        %s/month\n", money.Format(settings.BudgetAmount, settings.Currency))
	} else {
		fmt.Println("    Budget:        off")
	}
	if settings.LastBudgetAlertAt != nil {
		fmt.Printf("    Last budget alert: %s\n", settings.LastBudgetAlertAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
