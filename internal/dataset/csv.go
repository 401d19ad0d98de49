package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"sortkit/internal/errors"
	"sortkit/internal/record"
)

func readCSV(r io.Reader, opts Options) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.DecodeFailed, "csv dataset has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.DecodeFailed, err, "csv header")
	}

	var rs []record.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.DecodeFailed, err, "csv row %d", len(rs)+2)
		}

		rec := make(record.Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				rec[name] = record.Null()
				continue
			}
			rec[name] = parseCell(row[i], opts.CSVAutodetect)
		}
		rs = append(rs, rec)
	}
	return rs, nil
}

// parseCell interprets a CSV cell. Empty cells are null; with autodetect
// on, cells that look like an int, float, or bool become one.
func parseCell(cell string, autodetect bool) record.Value {
	if cell == "" {
		return record.Null()
	}
	if !autodetect {
		return record.String(cell)
	}

	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return record.Int(i)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return record.Float(f)
	}
	if b, err := strconv.ParseBool(cell); err == nil {
		return record.Bool(b)
	}
	return record.String(cell)
}

func writeCSV(w io.Writer, rs []record.Record) error {
	header := record.Fields(rs)
	if len(header) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, r := range rs {
		for i, name := range header {
			row[i] = r.Get(name).String()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
