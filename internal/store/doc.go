// Package store provides persistent storage for to-do items using SQLite.
//
// The sole entity is Item: a to-do record with a uid assigned by the
// database, a required name, an optional description, and a completed
// flag. SQLiteStore implements the Store interface against a single
// items table; MockStore is an in-memory implementation for tests.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//
// Schema creation is idempotent, so opening an existing database is
// safe. The uid column is INTEGER PRIMARY KEY AUTOINCREMENT: uids are
// unique for the lifetime of the database and never reused after a
// row is deleted.
//
// # Error Handling
//
// ErrNotFound is returned whenever a requested uid does not resolve
// to a row, including deletes that matched nothing. All other failures
// are wrapped database errors. All methods accept context.Context.
package store
