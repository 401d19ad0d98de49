package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	burnt "github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sortkit/internal/errors"
	"sortkit/internal/record"
)

// Options adjust decoding behavior.
type Options struct {
	// CSVAutodetect parses CSV cells as int, float, or bool where they
	// look like one; otherwise every cell is a string.
	CSVAutodetect bool
}

// tomlDocument is the shape of a TOML dataset: an array of tables.
type tomlDocument struct {
	Records []map[string]interface{} `toml:"records"`
}

// Read loads records from a file, detecting format (and gzip) from the
// path.
func Read(path string, opts Options) ([]record.Record, error) {
	format, gzipped, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.DecodeFailed, err, "gzip %s", path)
		}
		defer gz.Close()
		r = gz
	}

	return ReadFrom(r, format, opts)
}

// ReadFrom decodes records from r in the given format. Input order is
// preserved.
func ReadFrom(r io.Reader, format Format, opts Options) ([]record.Record, error) {
	switch format {
	case JSON:
		return readJSON(r)
	case YAML:
		return readYAML(r)
	case TOML:
		return readTOML(r)
	case CSV:
		return readCSV(r, opts)
	default:
		return nil, errors.New(errors.UnsupportedFormat, "unknown format %q", format)
	}
}

// Write stores records to a file, detecting format (and gzip) from the
// path.
func Write(path string, rs []record.Record) error {
	format, gzipped, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := WriteTo(w, format, rs); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("closing gzip stream: %w", err)
		}
	}
	return nil
}

// WriteTo encodes records to w in the given format.
func WriteTo(w io.Writer, format Format, rs []record.Record) error {
	switch format {
	case JSON:
		return writeJSON(w, rs)
	case YAML:
		return writeYAML(w, rs)
	case TOML:
		return writeTOML(w, rs)
	case CSV:
		return writeCSV(w, rs)
	default:
		return errors.New(errors.UnsupportedFormat, "unknown format %q", format)
	}
}

func readJSON(r io.Reader) ([]record.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep integers intact

	var rows []map[string]interface{}
	if err := dec.Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.DecodeFailed, err, "json dataset")
	}
	return fromMaps(rows)
}

func writeJSON(w io.Writer, rs []record.Record) error {
	data, err := json.MarshalIndent(toMaps(rs), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func readYAML(r io.Reader) ([]record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(errors.DecodeFailed, err, "yaml dataset")
	}
	return fromMaps(rows)
}

func writeYAML(w io.Writer, rs []record.Record) error {
	data, err := yaml.Marshal(toMaps(rs))
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func readTOML(r io.Reader) ([]record.Record, error) {
	var doc tomlDocument
	if _, err := burnt.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.DecodeFailed, err, "toml dataset")
	}
	return fromMaps(doc.Records)
}

func writeTOML(w io.Writer, rs []record.Record) error {
	// TOML has no null; null fields are omitted from their table.
	rows := make([]map[string]interface{}, len(rs))
	for i, r := range rs {
		row := make(map[string]interface{}, len(r))
		for k, v := range r {
			if !v.IsNull() {
				row[k] = v.Any()
			}
		}
		rows[i] = row
	}

	doc := tomlDocument{Records: rows}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func fromMaps(rows []map[string]interface{}) ([]record.Record, error) {
	rs := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := record.FromMap(row)
		if err != nil {
			return nil, errors.Wrap(errors.DecodeFailed, err, "record %d", i)
		}
		rs = append(rs, rec)
	}
	return rs, nil
}

func toMaps(rs []record.Record) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(rs))
	for i, r := range rs {
		rows[i] = r.ToMap()
	}
	return rows
}
