// Package mysql implements the storage contract on a MySQL or
// MariaDB server.
package mysql

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
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

// NewDatabase connects to the MySQL server and ensures the
// observations table exists in the configured database.
func NewDatabase(config Config) (*Database, error) {
	driverConfig := mysql.NewConfig()
	driverConfig.User = config.Username
	driverConfig.Passwd = config.Password
	driverConfig.Net = "tcp"
	driverConfig.Addr = config.Host + ":" + strconv.Itoa(int(config.Port))
	driverConfig.DBName = config.Database
	driverConfig.ParseTime = true
	driverConfig.Loc = time.UTC

	connector, err := mysql.NewConnector(driverConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connector: %w", err)
	}
	sqlDB := sql.OpenDB(connector)

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
	return "mysql database " + db.database + " at " +
		db.host + ":" + strconv.Itoa(int(db.port))
}

func (db *Database) Close() error {
	return db.sql.Close()
}
