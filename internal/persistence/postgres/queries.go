package postgres

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

func ensureTable(sqlDB *sql.DB) (created bool, err error) {
	var exists bool
	// filtering on the current schema so that a table of the same
	// name in another schema does not suppress creation here.
	err = sqlDB.QueryRow(
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		);`, tableName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking table existence: %w", err)
	}
	if exists {
		return false, nil
	}

	_, err = sqlDB.Exec(`CREATE TABLE ` + tableName + ` (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		time TIMESTAMPTZ NOT NULL,
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
	// pgx does not support LastInsertId so the id is returned
	// by the insert statement itself.
	err = db.sql.QueryRowContext(ctx,
		"INSERT INTO "+tableName+"(time, ip_address) VALUES ($1, $2) RETURNING id;",
		t, address.String()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting observation: %w", err)
	}
	return id, nil
}

func (db *Database) SelectLatest(ctx context.Context) (
	observation models.Observation, ok bool, err error) {
	row := db.sql.QueryRowContext(ctx,
		"SELECT id, time, ip_address FROM "+tableName+
			" ORDER BY time DESC, id DESC LIMIT 1;")
	var addressString sql.NullString
	err = row.Scan(&observation.ID, &observation.Time, &addressString)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return observation, false, nil
	case err != nil:
		return observation, false, fmt.Errorf("selecting latest observation: %w", err)
	}
	observation.Time = observation.Time.UTC()

	if !addressString.Valid {
		return observation, false, nil
	}
	observation.Address, err = netip.ParseAddr(addressString.String)
	if err != nil {
		return observation, false, fmt.Errorf("parsing observation address: %w", err)
	}
	return observation, true, nil
}
