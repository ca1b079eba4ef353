// Package cli implements the pricesort commands using Cobra.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/PriceSort/internal/config"
	"github.com/JonMunkholm/PriceSort/internal/core"
	"github.com/JonMunkholm/PriceSort/internal/logging"
)

// app carries state shared by all commands after configuration loads.
type app struct {
	cfg *config.Config

	// loadConfig is swapped in tests
	loadConfig func() (*config.Config, error)
}

// NewRootCmd builds the command tree. Running the root command sorts the
// configured price list.
func NewRootCmd(version string) *cobra.Command {
	a := &app{loadConfig: config.Load}
	return a.rootCmd(version)
}

func (a *app) rootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "pricesort",
		Short: "Sort a shop price list by category, price and state",
		Long: `pricesort reads prices.csv, orders its rows by category
(腕輪, 草, 巻物, 杖, 壺), then buy price, then state (ふつう, 祝福, 呪い,
anything else last), and writes sorted_prices.csv.

The lookup and serve commands search the same list by price.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: a.runSort,
	}

	root.AddCommand(
		a.lookupCmd(),
		a.serveCmd(),
	)
	return root
}

// setup loads configuration and configures logging.
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// runSort is the one-shot pipeline: load, sort, save, then the notice.
func (a *app) runSort(cmd *cobra.Command, args []string) error {
	ctx, _ := logging.WithRunID(cmd.Context())
	logging.FromContext(ctx).Debug("sort started", "config", a.cfg.String())

	res, err := core.Run(ctx, a.cfg.Files.Input, a.cfg.Files.Output)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), core.CompletionMessage(res.Output))
	return nil
}
