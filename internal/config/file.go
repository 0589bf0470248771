package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// loadConfFile reads and parses a single JSON config file. The top-level JSON
// value must be an object; anything else cannot be merged with the other
// config sources.
//
// Returns *InvalidFormatError for malformed JSON (wrapping the decode error)
// and *TypeMismatchError for a non-object top level.
func loadConfFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &InvalidFormatError{Path: path, Err: err}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Path: path}
	}

	return obj, nil
}

// loadConfDir parses every config file in dir and merges them into a single
// mapping. Files are merged in sorted name order, so later names override
// earlier ones. Discovery is non-recursive.
func loadConfDir(dir string) (Mapping, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading config dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isConfFileName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	merged := Mapping{}
	for _, name := range names {
		fileConf, err := loadConfFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if merged, err = deepMerge(merged, fileConf); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// isConfFileName reports whether name looks like a config file that belongs
// to a conf-dir.
func isConfFileName(name string) bool {
	return strings.HasSuffix(name, ".conf") || strings.HasSuffix(name, ".json")
}
