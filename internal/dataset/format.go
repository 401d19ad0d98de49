// Package dataset reads and writes flat record sets in JSON, YAML,
// TOML, and CSV, with transparent gzip for .gz files. Decoding preserves
// input order; the stable no-op sort property depends on that.
package dataset

import (
	"path/filepath"
	"strings"

	"sortkit/internal/errors"
)

// Format identifies a dataset encoding.
type Format string

const (
	// JSON is an array of flat objects
	JSON Format = "json"
	// YAML is a sequence of flat mappings
	YAML Format = "yaml"
	// TOML is a document with a [[records]] array of tables
	TOML Format = "toml"
	// CSV is a header row plus data rows
	CSV Format = "csv"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	case "csv":
		return CSV, nil
	default:
		return "", errors.New(errors.UnsupportedFormat, "unknown format %q", name)
	}
}

// DetectFormat infers the format from a file path. A trailing .gz is
// stripped first, so "people.json.gz" detects as JSON with compression.
func DetectFormat(path string) (format Format, gzipped bool, err error) {
	name := path
	if strings.HasSuffix(name, ".gz") {
		gzipped = true
		name = strings.TrimSuffix(name, ".gz")
	}

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", false, errors.New(errors.UnsupportedFormat, "cannot detect format of %q", path)
	}
	format, err = ParseFormat(ext)
	if err != nil {
		return "", false, err
	}
	return format, gzipped, nil
}
