package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/qdm12/ipget/internal/models"
)

const tableName = "public_ip_address"

// timeLayout has fixed width fractional seconds so that the
// lexicographic order of stored strings matches chronological order.
const timeLayout = "2006-01-02 15:04:05.000000"

func ensureTable(sqlDB *sql.DB) (created bool, err error) {
	var name string
	err = sqlDB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?;",
		tableName).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("checking table existence: %w", err)
	default:
		return false, nil
	}

	_, err = sqlDB.Exec(`CREATE TABLE ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		time TIMESTAMP NOT NULL,
		ip_address VARCHAR(80)
	);`)
	if err != nil {
		return false, fmt.Errorf("creating table: %w", err)
	}
	return true, nil
}

func (db *Database) Insert(ctx context.Context, t time.Time,
	address netip.Addr) (id int64, err error) {
	t = t.UTC().Truncate(time.Microsecond)
	result, err := db.sql.ExecContext(ctx,
		"INSERT INTO "+tableName+"(time, ip_address) VALUES (?, ?);",
		t.Format(timeLayout), address.String())
	if err != nil {
		return 0, fmt.Errorf("inserting observation: %w", err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted row id: %w", err)
	}
	return id, nil
}

func (db *Database) SelectLatest(ctx context.Context) (
	observation models.Observation, ok bool, err error) {
	row := db.sql.QueryRowContext(ctx,
		"SELECT id, time, ip_address FROM "+tableName+
			" ORDER BY time DESC, id DESC LIMIT 1;")
	var timeString string
	var addressString sql.NullString
	err = row.Scan(&observation.ID, &timeString, &addressString)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return observation, false, nil
	case err != nil:
		return observation, false, fmt.Errorf("selecting latest observation: %w", err)
	}

	observation.Time, err = time.Parse(timeLayout, timeString)
	if err != nil {
		return observation, false, fmt.Errorf("parsing observation time: %w", err)
	}
	observation.Time = observation.Time.UTC()

	if !addressString.Valid {
		// nullable at the schema level, although this program
		// never writes a null address.
		return observation, false, nil
	}
	observation.Address, err = netip.ParseAddr(addressString.String)
	if err != nil {
		return observation, false, fmt.Errorf("parsing observation address: %w", err)
	}
	return observation, true, nil
}
