package storage

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"sortkit/internal/descriptor"
	"sortkit/internal/errors"
	"sortkit/internal/logging"
	"sortkit/internal/record"
)

// DatasetInfo describes one stored dataset.
type DatasetInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Digest      string    `json:"digest"`
	RecordCount int       `json:"recordCount"`
	CreatedAt   time.Time `json:"createdAt"`

	// DuplicateOf names an existing dataset with identical content, set
	// by SaveDataset when the digest already appears under another name.
	DuplicateOf string `json:"duplicateOf,omitempty"`
}

// digestRecords fingerprints the dataset content: BLAKE2b-256 over the
// canonical JSON of the record list.
func digestRecords(rs []record.Record) (string, error) {
	rows := make([]map[string]interface{}, len(rs))
	for i, r := range rs {
		rows[i] = r.ToMap()
	}
	data, err := json.Marshal(rows) // map keys are sorted by encoding/json
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SaveDataset stores records under name. Names are unique; saving an
// existing name is a DATASET_EXISTS error. Content identical to an
// already-stored dataset is reported through DuplicateOf.
func (s *Store) SaveDataset(name string, rs []record.Record) (*DatasetInfo, error) {
	digest, err := digestRecords(rs)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "fingerprinting %q", name)
	}

	info := &DatasetInfo{
		ID:          uuid.NewString(),
		Name:        name,
		Digest:      digest,
		RecordCount: len(rs),
		CreatedAt:   time.Now().UTC(),
	}

	err = s.withTx(func(tx *sql.Tx) error {
		var existing string
		err := tx.QueryRow(`SELECT id FROM datasets WHERE name = ?`, name).Scan(&existing)
		if err == nil {
			return errors.New(errors.DatasetExists, "dataset %q already exists", name)
		}
		if err != sql.ErrNoRows {
			return errors.Wrap(errors.StoreFailure, err, "checking name %q", name)
		}

		// Same content under a different name is allowed but reported.
		var dup string
		err = tx.QueryRow(`SELECT name FROM datasets WHERE digest = ? LIMIT 1`, digest).Scan(&dup)
		if err == nil {
			info.DuplicateOf = dup
		} else if err != sql.ErrNoRows {
			return errors.Wrap(errors.StoreFailure, err, "checking digest")
		}

		_, err = tx.Exec(
			`INSERT INTO datasets (id, name, digest, record_count, created_at) VALUES (?, ?, ?, ?, ?)`,
			info.ID, info.Name, info.Digest, info.RecordCount, info.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return errors.Wrap(errors.StoreFailure, err, "inserting dataset %q", name)
		}

		stmt, err := tx.Prepare(`INSERT INTO dataset_records (dataset_id, position, body) VALUES (?, ?, ?)`)
		if err != nil {
			return errors.Wrap(errors.StoreFailure, err, "preparing record insert")
		}
		defer stmt.Close()

		for i, r := range rs {
			body, err := json.Marshal(r.ToMap())
			if err != nil {
				return errors.Wrap(errors.StoreFailure, err, "encoding record %d", i)
			}
			if _, err := stmt.Exec(info.ID, i, string(body)); err != nil {
				return errors.Wrap(errors.StoreFailure, err, "inserting record %d", i)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := logging.Fields{"name": name, "records": len(rs)}
	if info.DuplicateOf != "" {
		fields["duplicateOf"] = info.DuplicateOf
		s.logger.Warn("dataset content duplicates an existing dataset", fields)
	} else {
		s.logger.Info("dataset saved", fields)
	}
	return info, nil
}

// LoadDataset returns the records of the named dataset in their stored
// order.
func (s *Store) LoadDataset(name string) ([]record.Record, error) {
	var id string
	err := s.conn.QueryRow(`SELECT id FROM datasets WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.DatasetNotFound, "dataset %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "looking up %q", name)
	}

	rows, err := s.conn.Query(
		`SELECT body FROM dataset_records WHERE dataset_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "reading records of %q", name)
	}
	defer rows.Close()

	var rs []record.Record
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, errors.Wrap(errors.StoreFailure, err, "scanning record")
		}
		rec, err := decodeBody(body)
		if err != nil {
			return nil, err
		}
		rs = append(rs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "iterating records of %q", name)
	}
	return rs, nil
}

func decodeBody(body string) (record.Record, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "decoding stored record")
	}
	rec, err := record.FromMap(m)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "rebuilding stored record")
	}
	return rec, nil
}

// ListDatasets returns all stored datasets ordered by name.
func (s *Store) ListDatasets() ([]DatasetInfo, error) {
	rows, err := s.conn.Query(`SELECT id, name, digest, record_count, created_at FROM datasets`)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "listing datasets")
	}
	defer rows.Close()

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		var created string
		if err := rows.Scan(&info.ID, &info.Name, &info.Digest, &info.RecordCount, &created); err != nil {
			return nil, errors.Wrap(errors.StoreFailure, err, "scanning dataset row")
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			info.CreatedAt = t
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StoreFailure, err, "iterating datasets")
	}

	descriptor.Sort(infos, descriptor.By(func(i DatasetInfo) string { return i.Name }))
	return infos, nil
}

// DeleteDataset removes the named dataset and its records. Records are
// deleted explicitly: the foreign_keys pragma is per connection and the
// sql pool does not replay it, so ON DELETE CASCADE cannot be relied on.
func (s *Store) DeleteDataset(name string) error {
	return s.withTx(func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRow(`SELECT id FROM datasets WHERE name = ?`, name).Scan(&id)
		if err == sql.ErrNoRows {
			return errors.New(errors.DatasetNotFound, "dataset %q not found", name)
		}
		if err != nil {
			return errors.Wrap(errors.StoreFailure, err, "looking up %q", name)
		}

		if _, err := tx.Exec(`DELETE FROM dataset_records WHERE dataset_id = ?`, id); err != nil {
			return errors.Wrap(errors.StoreFailure, err, "deleting records of %q", name)
		}
		if _, err := tx.Exec(`DELETE FROM datasets WHERE id = ?`, id); err != nil {
			return errors.Wrap(errors.StoreFailure, err, "deleting %q", name)
		}
		return nil
	})
}
