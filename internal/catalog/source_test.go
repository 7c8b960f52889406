package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	options []SkipOption
	err     error
}

func (s stubSource) Fetch(context.Context) ([]SkipOption, error) { return s.options, s.err }
func (s stubSource) Name() string                                { return "stub" }

func TestMockSourceFailsFirstFetches(t *testing.T) {
	t.Parallel()

	src := NewMockSource(0, 1)
	ctx := context.Background()

	_, err := src.Fetch(ctx)
	require.ErrorIs(t, err, ErrSimulatedFailure)

	skips, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, skips, 8)
	assert.Equal(t, 2, src.Calls())
}

func TestMockSourceHonoursCancellation(t *testing.T) {
	t.Parallel()

	src := NewMockSource(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadWrapsFailuresInFetchError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Load(context.Background(), stubSource{err: boom}, zerolog.Nop())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "stub", fetchErr.Source)
	assert.ErrorIs(t, err, boom)
}

func TestFetchErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "catalog fetch from http failed: boom", (&FetchError{Source: "http", Err: errors.New("boom")}).Error())
	assert.Equal(t, "catalog fetch from mock failed", (&FetchError{Source: "mock"}).Error())
	assert.Equal(t, "Failed to load skip options", UserMessage)
}

func TestLoadRejectsInvalidCatalog(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), stubSource{options: []SkipOption{{ID: "x"}, {ID: "x"}}}, zerolog.Nop())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadReturnsOptions(t *testing.T) {
	t.Parallel()

	skips, err := Load(context.Background(), stubSource{options: ReferenceCatalog()}, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, skips, 8)
}

func TestFileSourceReadsJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "skips.json")
	data, err := json.Marshal(ReferenceCatalog()[:2])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	src := &FileSource{Path: path}
	skips, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, skips, 2)
	assert.Equal(t, "6-yard", skips[1].ID)
	assert.Equal(t, "14 day hire", skips[1].HirePeriod)
	assert.True(t, skips[1].Popular)
}

func TestFileSourceReportsDecodeErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.Error(t, err)
}

func TestNewSourceSelectsKind(t *testing.T) {
	ctx := context.Background()
	t.Setenv(cacheEnvVar, t.TempDir())

	src, err := NewSource(ctx, SourceConfig{})
	require.NoError(t, err)
	assert.Equal(t, KindMock, src.Name())

	src, err = NewSource(ctx, SourceConfig{Kind: KindFile, Path: "skips.json"})
	require.NoError(t, err)
	assert.Equal(t, KindFile, src.Name())

	src, err = NewSource(ctx, SourceConfig{Kind: KindHTTP, URL: "http://example.invalid/skips"})
	require.NoError(t, err)
	assert.Equal(t, KindHTTP, src.Name())
	assert.NoError(t, Close(src))

	_, err = NewSource(ctx, SourceConfig{Kind: KindFile})
	assert.Error(t, err)

	_, err = NewSource(ctx, SourceConfig{Kind: "carrier-pigeon"})
	assert.Error(t, err)
}
