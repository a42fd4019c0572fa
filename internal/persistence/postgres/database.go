// Package postgres implements the storage contract on a PostgreSQL
// server through the pgx driver.
package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Config struct {
	Username string
	Password string
	Host     string
	Port     uint16
	Database string
}

type Database struct {
	sql          *sql.DB
	host         string
	port         uint16
	database     string
	createdTable bool
}

// NewDatabase connects to the PostgreSQL server and ensures the
// observations table exists in the configured database.
func NewDatabase(config Config) (*Database, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.Username, config.Password),
		Host:   config.Host + ":" + strconv.Itoa(int(config.Port)),
		Path:   "/" + config.Database,
	}
	sqlDB, err := sql.Open("pgx", dsn.String())
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
		host:     config.Host,
		port:     config.Port,
		database: config.Database,
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
	return "postgres database " + db.database + " at " +
		db.host + ":" + strconv.Itoa(int(db.port))
}

func (db *Database) Close() error {
	return db.sql.Close()
}
