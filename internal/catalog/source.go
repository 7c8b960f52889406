package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/csheth/skiphire/internal/metrics"
)

// Source is the data boundary the booking step consumes. Implementations
// must honour ctx cancellation.
type Source interface {
	Fetch(ctx context.Context) ([]SkipOption, error)
	Name() string
}

// Source kinds accepted by NewSource.
const (
	KindMock     = "mock"
	KindFile     = "file"
	KindHTTP     = "http"
	KindPostgres = "postgres"
)

// SourceConfig selects and parameterises a Source.
type SourceConfig struct {
	Kind      string
	Path      string
	URL       string
	DSN       string
	Delay     time.Duration
	FailFirst int
	CacheDir  string
	CacheTTL  time.Duration
}

// NewSource builds the Source described by cfg. Sources holding connections
// implement io.Closer; release them with Close.
func NewSource(ctx context.Context, cfg SourceConfig) (Source, error) {
	switch cfg.Kind {
	case "", KindMock:
		return NewMockSource(cfg.Delay, cfg.FailFirst), nil
	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("catalog path is required for the %s source", KindFile)
		}
		return &FileSource{Path: cfg.Path}, nil
	case KindHTTP:
		src, err := NewHTTPSource(cfg.URL, cfg.CacheDir, cfg.CacheTTL, nil)
		if err != nil {
			return nil, err
		}
		return src, nil
	case KindPostgres:
		src, err := NewPostgresSource(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Kind)
	}
}

// Close releases src when it holds resources.
func Close(src Source) error {
	if closer, ok := src.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Load fetches and validates the catalog. Every failure is returned as a
// *FetchError.
func Load(ctx context.Context, src Source, logger zerolog.Logger) ([]SkipOption, error) {
	started := time.Now()
	options, err := src.Fetch(ctx)
	if err == nil {
		err = Validate(options)
	}
	elapsed := time.Since(started)
	metrics.ObserveCatalogFetch(src.Name(), err, elapsed)
	if err != nil {
		logger.Warn().Err(err).Str("source", src.Name()).Dur("duration", elapsed).Msg("catalog fetch failed")
		return nil, &FetchError{Source: src.Name(), Err: err}
	}
	logger.Info().Str("source", src.Name()).Int("count", len(options)).Dur("duration", elapsed).Msg("catalog loaded")
	return options, nil
}
