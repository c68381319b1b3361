package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/CTAG07/Bestiary/pkg/animals"
)

// ErrDatasetNotFound is returned when no dataset has the requested name.
var ErrDatasetNotFound = errors.New("dataset not found")

// SetupSchema initializes the catalog tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaDatasets = `
CREATE TABLE IF NOT EXISTS catalog_datasets (
    dataset_id INTEGER PRIMARY KEY,
    dataset_name TEXT NOT NULL UNIQUE,
    imported_at TEXT NOT NULL
);
`
		schemaRecords = `
CREATE TABLE IF NOT EXISTS catalog_records (
    dataset_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    record_name TEXT NOT NULL DEFAULT '',
    document TEXT NOT NULL,
    PRIMARY KEY (dataset_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// Commit makes the deferred rollback a no-op.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaDatasets); err != nil {
		return fmt.Errorf("could not create datasets schema: %w", err)
	}

	if _, err = tx.Exec(schemaRecords); err != nil {
		return fmt.Errorf("could not create records schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// DatasetInfo holds the metadata of one imported dataset.
type DatasetInfo struct {
	Id         int
	Name       string
	ImportedAt time.Time
	Records    int
}

// Store reads and writes datasets. It holds prepared statements for the
// read paths; call Close when done with it.
type Store struct {
	db              *sql.DB
	stmtGetDataset  *sql.Stmt
	stmtGetDatasets *sql.Stmt
	stmtGetRecords  *sql.Stmt
	logger          *slog.Logger
}

// NewStore prepares the catalog statements against db. SetupSchema must
// have been called on db beforehand.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	var err error
	s.stmtGetDataset, err = db.Prepare(`SELECT dataset_id, imported_at FROM catalog_datasets WHERE dataset_name = ?;`)
	if err != nil {
		return nil, err
	}

	s.stmtGetDatasets, err = db.Prepare(`
SELECT d.dataset_id, d.dataset_name, d.imported_at, COUNT(r.position)
FROM catalog_datasets d
LEFT JOIN catalog_records r ON r.dataset_id = d.dataset_id
GROUP BY d.dataset_id, d.dataset_name, d.imported_at
ORDER BY d.dataset_name;`)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.stmtGetRecords, err = db.Prepare(`SELECT document FROM catalog_records WHERE dataset_id = ? ORDER BY position;`)
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the prepared statements held by the Store.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{s.stmtGetDataset, s.stmtGetDatasets, s.stmtGetRecords} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Import stores records as the dataset called name, replacing any dataset
// of the same name. The whole import happens in one transaction.
func (s *Store) Import(ctx context.Context, name string, records []animals.Record) (DatasetInfo, error) {
	if name == "" {
		return DatasetInfo{}, errors.New("dataset name is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if err = removeDataset(ctx, tx, name); err != nil {
		return DatasetInfo{}, err
	}

	importedAt := time.Now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx, "INSERT INTO catalog_datasets (dataset_name, imported_at) VALUES (?, ?)", name, importedAt.Format(time.RFC3339))
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("failed to insert dataset %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("failed to read dataset id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO catalog_records (dataset_id, position, record_name, document) VALUES (?, ?, ?, ?)")
	if err != nil {
		return DatasetInfo{}, err
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmt)

	for i := range records {
		doc, err := json.Marshal(&records[i])
		if err != nil {
			return DatasetInfo{}, fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		if _, err = stmt.ExecContext(ctx, id, i, records[i].Name.String(), string(doc)); err != nil {
			return DatasetInfo{}, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return DatasetInfo{}, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Dataset imported",
		slog.String("dataset", name),
		slog.Int("records", len(records)),
	)

	return DatasetInfo{Id: int(id), Name: name, ImportedAt: importedAt, Records: len(records)}, nil
}

// Records returns the records of the named dataset in their imported order.
func (s *Store) Records(ctx context.Context, name string) ([]animals.Record, error) {
	var (
		id         int
		importedAt string
	)
	err := s.stmtGetDataset.QueryRowContext(ctx, name).Scan(&id, &importedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
		}
		return nil, err
	}

	rows, err := s.stmtGetRecords.QueryContext(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not query records of %q: %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	records := make([]animals.Record, 0)
	for rows.Next() {
		var doc string
		if err = rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rec animals.Record
		if err = json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record of %q: %w", name, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Datasets returns metadata for every dataset, sorted by name.
func (s *Store) Datasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.stmtGetDatasets.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	datasets := make([]DatasetInfo, 0)
	for rows.Next() {
		var (
			info       DatasetInfo
			importedAt string
		)
		if err = rows.Scan(&info.Id, &info.Name, &importedAt, &info.Records); err != nil {
			return nil, err
		}
		if info.ImportedAt, err = time.Parse(time.RFC3339, importedAt); err != nil {
			return nil, fmt.Errorf("invalid import time for %q: %w", info.Name, err)
		}
		datasets = append(datasets, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return datasets, nil
}

// Remove deletes the named dataset and its records. Removing a dataset
// that does not exist returns ErrDatasetNotFound.
func (s *Store) Remove(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var id int
	err = tx.QueryRowContext(ctx, "SELECT dataset_id FROM catalog_datasets WHERE dataset_name = ?", name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
		}
		return err
	}
	if err = removeDataset(ctx, tx, name); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Dataset removed", slog.String("dataset", name), slog.Int("dataset_id", id))
	return tx.Commit()
}

// Export writes the named dataset to w as a JSON array, in the same shape
// the data file loader reads.
func (s *Store) Export(ctx context.Context, name string, w io.Writer) error {
	records, err := s.Records(ctx, name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err = enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode dataset %q: %w", name, err)
	}
	return nil
}

func removeDataset(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_records WHERE dataset_id IN (SELECT dataset_id FROM catalog_datasets WHERE dataset_name = ?)", name); err != nil {
		return fmt.Errorf("failed to remove records of %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_datasets WHERE dataset_name = ?", name); err != nil {
		return fmt.Errorf("failed to remove dataset %q: %w", name, err)
	}
	return nil
}
