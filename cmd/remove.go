package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id|name>",
	Aliases: []string{"rm"},
	Short:   "Stop tracking a product",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p, err := st.FindProduct(args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteProduct(p.ID); err != nil {
		return err
	}
	notifyDaemon(cfg)

	fmt.Printf("  Removed %q\n", p.Name)
	return nil
}
