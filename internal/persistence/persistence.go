// Package persistence defines the storage contract for the public IP
// address history and maps the storage mode setting to one of the
// backend implementations.
package persistence

import (
	"fmt"
	"strings"

	"github.com/qdm12/ipget/internal/persistence/mysql"
	"github.com/qdm12/ipget/internal/persistence/postgres"
	"github.com/qdm12/ipget/internal/persistence/sqlite"
)

// New opens the storage backend selected by the mode setting.
// The settings must have been defaulted and validated beforehand,
// although an unknown mode is still rejected here.
//
//nolint:ireturn
func New(settings Settings) (database Database, err error) {
	switch strings.ToLower(*settings.Mode) {
	case "sqlite":
		return sqlite.NewDatabase(*settings.File)
	case "mysql":
		return mysql.NewDatabase(mysql.Config{
			Username: *settings.Username,
			Password: *settings.Password,
			Host:     *settings.Host,
			Port:     *settings.Port,
			Database: *settings.Database,
		})
	case "postgres", "postgresql":
		return postgres.NewDatabase(postgres.Config{
			Username: *settings.Username,
			Password: *settings.Password,
			Host:     *settings.Host,
			Port:     *settings.Port,
			Database: *settings.Database,
		})
	default:
		return nil, fmt.Errorf("%w: STORAGE_MODE is set to %q",
			ErrModeUnknown, *settings.Mode)
	}
}
