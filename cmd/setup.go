package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to smarket!")
	fmt.Println()

	// 1. Time zone
	fmt.Println("  1. Time zone")
	fmt.Println("     IANA name, e.g. America/Bogota. Leave blank for system local.")
	if cfg.General.Timezone != "" {
		fmt.Printf("     Current: %s\n", cfg.General.Timezone)
	}
	fmt.Print("     > ")
	tz, _ := reader.ReadString('\n')
	tz = strings.TrimSpace(tz)
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			fmt.Printf("     Unknown zone %q, keeping %q\n", tz, cfg.General.Timezone)
		} else {
			cfg.General.Timezone = tz
		}
	}
	fmt.Println()

	// 2. Notification command
	fmt.Println("  2. Notification command")
	fmt.Println("     Shell command for desktop notifications; {title} and {body}")
	fmt.Println("     are substituted. Example: notify-send {title} {body}")
	fmt.Println("     Leave blank to log notifications instead.")
	if len(cfg.Notify.Command) > 0 {
		fmt.Printf("     Current: %s\n", strings.Join(cfg.Notify.Command, " "))
	}
	fmt.Print("     > ")
	notifyLine, _ := reader.ReadString('\n')
	notifyLine = strings.TrimSpace(notifyLine)
	if notifyLine != "" {
		cfg.Notify.Command = strings.Fields(notifyLine)
	}
	fmt.Println()

	// 3. Refresh interval
	fmt.Println("  3. Daemon refresh interval")
	fmt.Println("     (1) 15 minutes")
	fmt.Println("     (2) 1 hour [default]")
	fmt.Println("     (3) 6 hours")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.Daemon.Interval = config.Duration(15 * time.Minute)
	case "3":
		cfg.Daemon.Interval = config.Duration(6 * time.Hour)
	default:
		cfg.Daemon.Interval = config.Duration(time.Hour)
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `smarket setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
