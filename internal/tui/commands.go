package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/csheth/skiphire/internal/catalog"
)

func fetchCatalogJob(src catalog.Source, gen int, timeout time.Duration, logger zerolog.Logger) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		options, err := catalog.Load(ctx, src, logger)
		return catalogResultMsg{gen: gen, options: options, err: err}, err
	}
}
