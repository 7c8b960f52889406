package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/csheth/skiphire/internal/catalog"
	"github.com/csheth/skiphire/internal/logging"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the skip catalog from the configured source",
		Long: `Load the skip catalog the same way the selection screen does and print
it as a table. Useful for checking a file, http or postgres source before
running the booking step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			closeLog := setupLogger(cfg)
			defer func() { _ = closeLog() }()

			src, err := catalog.NewSource(cmd.Context(), cfg.Catalog.SourceConfig())
			if err != nil {
				return fmt.Errorf("open catalog source: %w", err)
			}
			defer func() { _ = catalog.Close(src) }()

			options, err := catalog.Load(cmd.Context(), src, logging.NewLogger("catalog"))
			if err != nil {
				return err
			}
			renderCatalog(cmd.OutOrStdout(), options, cfg.UI.CurrencySymbol)
			return nil
		},
	}
}

func renderCatalog(w io.Writer, options []catalog.SkipOption, symbol string) {
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PRICE", "HIRE", "ROAD", "CAPACITY").
		StyleFunc(func(_, _ int) lipgloss.Style { return cell })
	for _, option := range options {
		road := "no"
		if option.RoadPlacementAllowed() {
			road = "yes"
		}
		name := option.Name
		if option.Popular {
			name += " *"
		}
		t.Row(
			option.ID,
			name,
			catalog.FormatPrice(symbol, option.Price),
			option.HirePeriod,
			road,
			option.Capacity,
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d skip options, * most popular\n", len(options))
}
