package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long a cached catalog response is served without
// revalidation.
const DefaultCacheTTL = 15 * time.Minute

const (
	cacheEnvVar        = "SKIPHIRE_CACHE_DIR"
	cacheSubdir        = "skiphire/catalog"
	partialSuffix      = ".part"
	metaSuffix         = ".meta"
	defaultHTTPTimeout = 30 * time.Second
	maxCatalogBytes    = 4 << 20
)

// errBodyTooLarge is returned for responses larger than maxCatalogBytes.
var errBodyTooLarge = fmt.Errorf("catalog response exceeds %d bytes", maxCatalogBytes)

type responseCache struct {
	dir    string
	ttl    time.Duration
	client *http.Client
	// accept vets a downloaded body before it replaces the cached copy.
	accept func([]byte) error
}

type responseCacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"lastModified"`
	CachedAt     time.Time `json:"cachedAt"`
	Size         int64     `json:"size"`
}

func newResponseCache(dir string, ttl time.Duration, client *http.Client, accept func([]byte) error) (*responseCache, error) {
	if dir == "" {
		dir = os.Getenv(cacheEnvVar)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "skiphire-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if accept == nil {
		accept = func([]byte) error { return nil }
	}
	return &responseCache{dir: dir, ttl: ttl, client: client, accept: accept}, nil
}

// Fetch returns the body for url, serving a fresh cached copy when possible
// and falling back to a stale one when the server cannot be reached.
func (c *responseCache) Fetch(ctx context.Context, url string) ([]byte, error) {
	bodyPath, metaPath, partialPath := c.pathsFor(cacheKey(url))

	info, statErr := os.Stat(bodyPath)
	if statErr == nil && info.Size() > 0 && time.Since(info.ModTime()) < c.ttl {
		return os.ReadFile(bodyPath)
	}
	if statErr != nil {
		info = nil
	}

	meta, _ := readMeta(metaPath)
	data, err := c.download(ctx, url, bodyPath, metaPath, partialPath, meta, info)
	if err == nil {
		return data, nil
	}
	if info != nil && info.Size() > 0 {
		return os.ReadFile(bodyPath)
	}
	return nil, err
}

func (c *responseCache) download(ctx context.Context, url, bodyPath, metaPath, partialPath string, meta responseCacheMeta, current os.FileInfo) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if current != nil && current.Size() > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		if current == nil || current.Size() == 0 {
			return c.download(ctx, url, bodyPath, metaPath, partialPath, responseCacheMeta{}, nil)
		}
		now := time.Now()
		if err := os.Chtimes(bodyPath, now, now); err != nil {
			return nil, err
		}
		meta.CachedAt = now.UTC()
		if err := writeMeta(metaPath, meta); err != nil {
			return nil, err
		}
		return os.ReadFile(bodyPath)
	case http.StatusOK:
		return c.saveBody(resp, bodyPath, metaPath, partialPath)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog request failed: %s (%s)", resp.Status, string(body))
	}
}

func (c *responseCache) saveBody(resp *http.Response, bodyPath, metaPath, partialPath string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxCatalogBytes {
		return nil, errBodyTooLarge
	}
	if err := c.accept(data); err != nil {
		return nil, err
	}
	if err := os.WriteFile(partialPath, data, 0o644); err != nil {
		return nil, err
	}
	if err := os.Rename(partialPath, bodyPath); err != nil {
		return nil, err
	}

	meta := responseCacheMeta{
		URL:          resp.Request.URL.String(),
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
		CachedAt:     time.Now().UTC(),
		Size:         int64(len(data)),
	}
	if err := writeMeta(metaPath, meta); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *responseCache) pathsFor(key string) (string, string, string) {
	return filepath.Join(c.dir, key+".json"), filepath.Join(c.dir, key+metaSuffix), filepath.Join(c.dir, key+partialSuffix)
}

func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

func readMeta(path string) (responseCacheMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return responseCacheMeta{}, err
	}
	var meta responseCacheMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return responseCacheMeta{}, err
	}
	return meta, nil
}

func writeMeta(path string, meta responseCacheMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
