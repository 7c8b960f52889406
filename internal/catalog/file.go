package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads the catalog from a JSON array on disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(ctx context.Context) ([]SkipOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return decodeCatalog(data)
}

func decodeCatalog(data []byte) ([]SkipOption, error) {
	var options []SkipOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return options, nil
}
