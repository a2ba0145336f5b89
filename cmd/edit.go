package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/smarket/internal/category"
	"github.com/mfigueredo/smarket/internal/model"
)

var (
	flagEditName      string
	flagEditPrice     float64
	flagEditLasts     int
	flagEditPurchased string
	flagEditNotes     string
	flagEditCategory  string
)

var editCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Edit a tracked product",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditName, "name", "", "New name (re-categorizes unless --category given)")
	editCmd.Flags().Float64VarP(&flagEditPrice, "price", "p", -1, "New latest price")
	editCmd.Flags().IntVarP(&flagEditLasts, "lasts", "l", 0, "New duration in days")
	editCmd.Flags().StringVar(&flagEditPurchased, "purchased", "", "New last purchase date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&flagEditNotes, "notes", "", "New notes")
	editCmd.Flags().StringVarP(&flagEditCategory, "category", "c", "", "Category override")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p, err := st.FindProduct(args[0])
	if err != nil {
		return err
	}

	if flagEditName != "" {
		p.Name = flagEditName
		// Renaming re-derives the category unless the user pins one.
		if flagEditCategory == "" {
			p.Category = category.Categorize(p.Name)
		}
	}
	if flagEditCategory != "" {
		p.Category = model.ParseCategory(flagEditCategory)
	}
	if flagEditPrice >= 0 {
		p.PriceLatest = flagEditPrice
	}
	if flagEditLasts > 0 {
		p.LastsDays = flagEditLasts
	}
	if flagEditPurchased != "" {
		t, err := time.ParseInLocation("2006-01-02", flagEditPurchased, cfg.Location())
		if err != nil {
			return fmt.Errorf("invalid --purchased date: %w", err)
		}
		p.LastPurchasedAt = t
	}
	if cmd.Flags().Changed("notes") {
		p.Notes = flagEditNotes
	}

	if err := st.SaveProduct(p); err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	notifyDaemon(cfg)

	fmt.Printf("  Updated %q (%s)\n", p.Name, p.Category)
	return nil
}
