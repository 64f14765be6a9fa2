// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides item persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the items table if it doesn't exist.
// AUTOINCREMENT guarantees uids are never reused after deletion.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS items (
			uid INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			completed INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1))
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var description sql.NullString

	if err := row.Scan(&item.UID, &item.Name, &description, &item.Completed); err != nil {
		return nil, err
	}

	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

// ListItems returns every stored item ordered by uid.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]*Item, error) {
	query := `
		SELECT uid, name, description, completed
		FROM items
		ORDER BY uid
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// GetItem retrieves an item by uid.
// Returns ErrNotFound if the item doesn't exist.
func (s *SQLiteStore) GetItem(ctx context.Context, uid int64) (*Item, error) {
	query := `
		SELECT uid, name, description, completed
		FROM items
		WHERE uid = ?
	`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}

	return item, nil
}

// CreateItem persists a new item and fills in the uid assigned by the database.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO items (name, description, completed)
		VALUES (?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, item.Name, item.Description, item.Completed)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	uid, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting assigned uid: %w", err)
	}
	item.UID = uid

	s.logger.Debug("created item", "uid", item.UID, "name", item.Name)
	return nil
}

// UpdateItem replaces all mutable fields of the item matching item.UID.
// Returns ErrNotFound if the item doesn't exist.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *Item) error {
	query := `
		UPDATE items
		SET name = ?, description = ?, completed = ?
		WHERE uid = ?
	`

	result, err := s.db.ExecContext(ctx, query, item.Name, item.Description, item.Completed, item.UID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated item", "uid", item.UID)
	return nil
}

// PatchItem applies the fields present in patch over the stored item.
// The read-merge-write runs in a single transaction so a concurrent
// write never produces a partially merged row.
// Returns ErrNotFound if the item doesn't exist.
func (s *SQLiteStore) PatchItem(ctx context.Context, uid int64, patch ItemPatch) (*Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT uid, name, description, completed
		FROM items
		WHERE uid = ?
	`

	item, err := scanItem(tx.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET name = ?, description = ?, completed = ?
		WHERE uid = ?
	`, item.Name, item.Description, item.Completed, item.UID)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing patch: %w", err)
	}

	s.logger.Debug("patched item", "uid", item.UID)
	return item, nil
}

// DeleteItem removes the item matching uid.
// Returns ErrNotFound if the item doesn't exist.
func (s *SQLiteStore) DeleteItem(ctx context.Context, uid int64) error {
	query := `DELETE FROM items WHERE uid = ?`

	result, err := s.db.ExecContext(ctx, query, uid)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted item", "uid", uid)
	return nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
