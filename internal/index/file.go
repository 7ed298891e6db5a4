package index

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

// FileProvider serves index lookups from a local JSON file for offline use
// and tests. The file holds an object mapping query strings to record
// arrays: {"example.com": [{"filename": "...", "offset": "0", ...}]}.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Lookup(_ context.Context, query string) ([]Record, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var all map[string][]Record
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	return all[query], nil
}
