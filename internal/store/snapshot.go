package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pokedex/catalog/internal/domain"
)

// snapshotFile is the on-disk layout of the whole cache. Offsets become
// string object keys in JSON and are parsed back on load.
type snapshotFile struct {
	TotalCount *int                        `json:"totalCount,omitempty"`
	Pages      map[string][]domain.Pokemon `json:"pages"`
}

func encodeSnapshot(pages map[int][]domain.Pokemon, totalCount *int) ([]byte, error) {
	file := snapshotFile{Pages: make(map[string][]domain.Pokemon, len(pages))}
	if totalCount != nil {
		count := *totalCount
		file.TotalCount = &count
	}
	for offset, items := range pages {
		file.Pages[strconv.Itoa(offset)] = items
	}
	return json.Marshal(file)
}

func decodeSnapshot(data []byte) (map[int][]domain.Pokemon, *int, error) {
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	pages := make(map[int][]domain.Pokemon, len(file.Pages))
	for key, items := range file.Pages {
		offset, err := strconv.Atoi(key)
		if err != nil || offset < 0 {
			return nil, nil, fmt.Errorf("bad page offset %q in snapshot", key)
		}
		pages[offset] = items
	}
	return pages, file.TotalCount, nil
}

// writeFileAtomic replaces path through a temp file and rename, so an
// interrupted write never leaves a truncated snapshot behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
