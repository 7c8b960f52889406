package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPSource fetches the catalog as JSON from a booking API endpoint. Responses
// are cached on disk and revalidated with ETag / Last-Modified.
type HTTPSource struct {
	URL   string
	cache *responseCache
}

// NewHTTPSource builds an HTTPSource. An empty cacheDir resolves to
// $SKIPHIRE_CACHE_DIR or the user cache directory; a nil client gets a
// default timeout.
func NewHTTPSource(url, cacheDir string, ttl time.Duration, client *http.Client) (*HTTPSource, error) {
	if url == "" {
		return nil, errors.New("catalog url is required")
	}
	cache, err := newResponseCache(cacheDir, ttl, client, checkCatalog)
	if err != nil {
		return nil, err
	}
	return &HTTPSource{URL: url, cache: cache}, nil
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Fetch(ctx context.Context) ([]SkipOption, error) {
	data, err := s.cache.Fetch(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	return decodeCatalog(data)
}

// checkCatalog rejects bodies that Load would reject so they are never cached.
func checkCatalog(data []byte) error {
	options, err := decodeCatalog(data)
	if err != nil {
		return err
	}
	return Validate(options)
}
