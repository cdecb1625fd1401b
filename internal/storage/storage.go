// Package storage persists report runs so past aggregations can be replayed
// without re-reading stats files or re-hitting the Mojang session server.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store is the SQLite-backed run-history database.
type Store struct {
	conn *sql.DB
}

// Open opens the run history at path, creating the file and applying the
// schema on first use. Pass ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying connection.
func (st *Store) Close() error {
	return st.conn.Close()
}
