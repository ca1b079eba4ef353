package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/PriceSort/internal/core"
	"github.com/JonMunkholm/PriceSort/internal/logging"
	"github.com/JonMunkholm/PriceSort/internal/web/templates"
)

var lookupHeaders = []string{"分類", "名前", "回数", "状態", "買値", "売値", "備考"}

func (a *app) lookupCmd() *cobra.Command {
	var q core.Query

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Search the price list by price, category and state",
		Example: `  pricesort lookup --price 800
  pricesort lookup --price 350 --target 売値 --category 草`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _ := logging.WithRunID(cmd.Context())

			list, err := core.LoadForLookup(ctx, a.cfg.Files.Input)
			if err != nil {
				return err
			}

			items, err := core.Filter(list, q)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug("lookup", "price", q.Price, "matches", len(items))

			return printItems(cmd.OutOrStdout(), items)
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.Price, "price", "", "buy or sell price to match (commas and full-width digits allowed)")
	f.StringVar(&q.Target, "target", core.TargetAll, "which price to match: すべて, 買値 or 売値")
	f.StringVar(&q.Category, "category", "", "only this category")
	f.StringVar(&q.State, "state", "", "only this state (ふつう also matches -)")
	f.BoolVar(&q.NonDefaultOnly, "non-default", false, "exclude items flagged as starting equipment")
	return cmd
}

// printItems renders items as a bordered table, or the no-results notice.
func printItems(w io.Writer, items []core.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, templates.NoResults)
		return err
	}

	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.Category, it.Name, it.Uses, it.State, it.Buy, it.Sell, it.Notes}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(lookupHeaders...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}
