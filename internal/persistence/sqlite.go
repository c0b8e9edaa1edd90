package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/logging"
	"task-manager/internal/validation"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteFile stores task lists as a standalone SQLite database file
type SQLiteFile struct {
	perm      os.FileMode
	validator *validation.TaskValidator
}

// NewSQLiteFile creates a SQLite task list codec writing files with perm
func NewSQLiteFile(perm os.FileMode, tv *validation.TaskValidator) *SQLiteFile {
	return &SQLiteFile{perm: perm, validator: tv}
}

// Scanner is the scanning behavior shared by sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Save implements Persistence
func (s *SQLiteFile) Save(ctx context.Context, records []domain.TaskRecord, path string) error {
	if err := s.validator.ValidateRecords(records); err != nil {
		return saveError(path, err)
	}

	if err := replaceFile(path, s.perm, func(tmpPath string) error {
		return s.build(ctx, tmpPath, toRows(records))
	}); err != nil {
		return saveError(path, err)
	}

	logging.Debugf("saved %d tasks as sqlite to %s\n", len(records), path)
	return nil
}

// build writes a fresh database holding rows into the empty file at dbPath
func (s *SQLiteFile) build(ctx context.Context, dbPath string, rows []taskRow) error {
	db, err := sql.Open("sqlite", dataSourceName(dbPath))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	meta := map[string]string{
		"format":  FormatName,
		"version": strconv.Itoa(FormatVersion),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, title, description) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for i, row := range rows {
		if _, err := insert.ExecContext(ctx, i, row.Title, row.Description); err != nil {
			return fmt.Errorf("write task %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return db.Close()
}

// Load implements Persistence
func (s *SQLiteFile) Load(ctx context.Context, path string) ([]domain.TaskRecord, error) {
	if err := checkSource(path); err != nil {
		return nil, loadError(path, err)
	}

	records, err := s.read(ctx, path)
	if err != nil {
		return nil, loadError(path, err)
	}
	if err := s.validator.ValidateRecords(records); err != nil {
		return nil, loadError(path, err)
	}

	logging.Debugf("loaded %d tasks from sqlite file %s\n", len(records), path)
	return records, nil
}

func (s *SQLiteFile) read(ctx context.Context, path string) ([]domain.TaskRecord, error) {
	db, err := sql.Open("sqlite", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// A single connection so the pragma below covers every query.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA query_only = ON`); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}

	format, version, err := readIdentity(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := checkIdentity(format, version); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT title, description FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	defer rows.Close()

	var taskRows []taskRow
	for rows.Next() {
		row, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("read task: %w", err)
		}
		taskRows = append(taskRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	return fromRows(taskRows), nil
}

// readIdentity reads the format name and version from the meta table
func readIdentity(ctx context.Context, db *sql.DB) (string, int, error) {
	var format, version string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'format'`).Scan(&format); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&version); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return "", 0, fmt.Errorf("%w: version %q", ErrUnsupportedVersion, version)
	}
	return format, v, nil
}

func scanTaskRow(scanner Scanner) (taskRow, error) {
	var row taskRow
	if err := scanner.Scan(&row.Title, &row.Description); err != nil {
		return taskRow{}, err
	}
	return row, nil
}

// dataSourceName turns a file path into a driver DSN. The path is escaped so
// that '?' and '#' in file names are not read as URI parameters.
func dataSourceName(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath()
}

// schemaStatements splits the embedded schema into individual statements
func schemaStatements() []string {
	var statements []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
