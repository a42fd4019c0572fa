// Package sqlite implements the storage contract on an embedded
// SQLite database file.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type Database struct {
	sql          *sql.DB
	filePath     string
	createdTable bool
}

// NewDatabase opens or creates the database file and ensures the
// observations table exists.
func NewDatabase(filePath string) (*Database, error) {
	filePath = filepath.Clean(filePath)
	err := os.MkdirAll(filepath.Dir(filePath), 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := filePath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &Database{
		sql:      sqlDB,
		filePath: filePath,
	}
	db.createdTable, err = ensureTable(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *Database) TableCreated() bool {
	return db.createdTable
}

func (db *Database) String() string {
	return "sqlite database in " + db.filePath
}

func (db *Database) Close() error {
	return db.sql.Close()
}
