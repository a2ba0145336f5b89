package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/config"
	"github.com/mfigueredo/smarket/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	dbPath := cfg.General.DBPath
	if dbPath == "" {
		dbPath = store.DefaultPath()
	}
	fmt.Printf("    Database:      %s\n", dbPath)
	tz := cfg.General.Timezone
	if tz == "" {
		tz = "system local"
	}
	fmt.Printf("    Timezone:      %s\n", tz)
	fmt.Printf("    Due-soon days: %d\n", cfg.General.DueSoonDays)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval: %s\n", cfg.Daemon.PollInterval())
	fmt.Println()

	fmt.Println("  [Notify]")
	if len(cfg.Notify.Command) > 0 {
		fmt.Printf("    Command: %s\n", strings.Join(cfg.Notify.Command, " "))
	} else {
		fmt.Println("    Command: not set (notifications are logged only)")
	}
	fmt.Println()

	fmt.Println("  Run `smarket setup` to reconfigure.")
	return nil
}
