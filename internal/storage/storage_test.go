package storage

import (
	"io"
	"path/filepath"
	"testing"

	"sortkit/internal/errors"
	"sortkit/internal/logging"
	"sortkit/internal/record"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	logger := logging.New(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
	s, err := Open(filepath.Join(t.TempDir(), "sortkit.db"), logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecords() []record.Record {
	return []record.Record{
		{"first": record.String("Eduardo"), "last": record.String("Vaca"), "year": record.Int(1995)},
		{"first": record.String("Julian"), "last": record.String("Carax"), "year": record.Int(1999)},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)

	info, err := s.SaveDataset("people", testRecords())
	if err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}
	if info.RecordCount != 2 {
		t.Errorf("RecordCount = %d, want 2", info.RecordCount)
	}
	if info.ID == "" || info.Digest == "" {
		t.Errorf("missing id or digest: %+v", info)
	}
	if info.DuplicateOf != "" {
		t.Errorf("DuplicateOf = %q, want empty", info.DuplicateOf)
	}

	rs, err := s.LoadDataset("people")
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("loaded %d records, want 2", len(rs))
	}
	// Stored order is input order
	if rs[0].Get("last").String() != "Vaca" || rs[1].Get("last").String() != "Carax" {
		t.Errorf("order not preserved: %v, %v", rs[0], rs[1])
	}
	if record.Compare(rs[1].Get("year"), record.Int(1999)) != 0 {
		t.Errorf("year = %v, want int 1999", rs[1].Get("year"))
	}
}

func TestSaveDuplicateName(t *testing.T) {
	s := testStore(t)

	if _, err := s.SaveDataset("people", testRecords()); err != nil {
		t.Fatalf("first save error = %v", err)
	}
	_, err := s.SaveDataset("people", nil)
	if !errors.HasCode(err, errors.DatasetExists) {
		t.Errorf("error = %v, want DATASET_EXISTS", err)
	}
}

func TestSaveDuplicateContent(t *testing.T) {
	s := testStore(t)

	if _, err := s.SaveDataset("people", testRecords()); err != nil {
		t.Fatalf("first save error = %v", err)
	}
	info, err := s.SaveDataset("people-copy", testRecords())
	if err != nil {
		t.Fatalf("second save error = %v", err)
	}
	if info.DuplicateOf != "people" {
		t.Errorf("DuplicateOf = %q, want %q", info.DuplicateOf, "people")
	}
}

func TestListDatasets(t *testing.T) {
	s := testStore(t)

	for _, name := range []string{"zebra", "alpha", "mid"} {
		if _, err := s.SaveDataset(name, []record.Record{{"n": record.String(name)}}); err != nil {
			t.Fatalf("SaveDataset(%q) error = %v", name, err)
		}
	}

	infos, err := s.ListDatasets()
	if err != nil {
		t.Fatalf("ListDatasets() error = %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("listed %d datasets, want 3", len(infos))
	}
	if infos[0].Name != "alpha" || infos[1].Name != "mid" || infos[2].Name != "zebra" {
		t.Errorf("not sorted by name: %v, %v, %v", infos[0].Name, infos[1].Name, infos[2].Name)
	}
}

func TestDeleteDataset(t *testing.T) {
	s := testStore(t)

	if _, err := s.SaveDataset("people", testRecords()); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}
	if err := s.DeleteDataset("people"); err != nil {
		t.Fatalf("DeleteDataset() error = %v", err)
	}

	_, err := s.LoadDataset("people")
	if !errors.HasCode(err, errors.DatasetNotFound) {
		t.Errorf("load after delete error = %v, want DATASET_NOT_FOUND", err)
	}

	if err := s.DeleteDataset("people"); !errors.HasCode(err, errors.DatasetNotFound) {
		t.Errorf("second delete error = %v, want DATASET_NOT_FOUND", err)
	}
}

func TestDeleteDatasetLeavesNoRecords(t *testing.T) {
	s := testStore(t)

	info, err := s.SaveDataset("people", testRecords())
	if err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}
	if err := s.DeleteDataset("people"); err != nil {
		t.Fatalf("DeleteDataset() error = %v", err)
	}

	var n int
	err = s.conn.QueryRow(
		`SELECT COUNT(*) FROM dataset_records WHERE dataset_id = ?`, info.ID).Scan(&n)
	if err != nil {
		t.Fatalf("counting records error = %v", err)
	}
	if n != 0 {
		t.Errorf("%d record rows orphaned after delete, want 0", n)
	}
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)
	_, err := s.LoadDataset("nope")
	if !errors.HasCode(err, errors.DatasetNotFound) {
		t.Errorf("error = %v, want DATASET_NOT_FOUND", err)
	}
}

func TestReopen(t *testing.T) {
	logger := logging.New(logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
	path := filepath.Join(t.TempDir(), "sortkit.db")

	s, err := Open(path, logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.SaveDataset("people", testRecords()); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}
	s.Close()

	s2, err := Open(path, logger)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	rs, err := s2.LoadDataset("people")
	if err != nil {
		t.Fatalf("LoadDataset() after reopen error = %v", err)
	}
	if len(rs) != 2 {
		t.Errorf("loaded %d records, want 2", len(rs))
	}
}
