package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
)

type Settings struct {
	// Mode is the storage backend to use, one of
	// sqlite, mysql, postgres or postgresql.
	// It is case insensitive and defaults to sqlite.
	Mode *string
	// File is the database file path for the sqlite mode.
	File *string
	// Username for the mysql and postgres modes.
	Username *string
	// Password for the mysql and postgres modes.
	Password *string
	// Host for the mysql and postgres modes.
	Host *string
	// Port for the mysql and postgres modes.
	Port *uint16
	// Database is the database name for the mysql and postgres modes.
	Database *string
}

func (s *Settings) SetDefaults() {
	s.Mode = gosettings.DefaultPointer(s.Mode, "sqlite")
	s.File = gosettings.DefaultPointer(s.File, "./data/ipget.db")
	s.Username = gosettings.DefaultPointer(s.Username, "")
	s.Password = gosettings.DefaultPointer(s.Password, "")
	s.Host = gosettings.DefaultPointer(s.Host, "")
	s.Port = gosettings.DefaultPointer(s.Port, 0)
	s.Database = gosettings.DefaultPointer(s.Database, "")
}

var (
	ErrModeUnknown    = errors.New("unknown storage mode")
	ErrSettingMissing = errors.New("required setting is missing")
)

func (s Settings) Validate() (err error) {
	switch strings.ToLower(*s.Mode) {
	case "sqlite":
		if *s.File == "" {
			return fmt.Errorf("%w: STORAGE_SQLITE_PATH", ErrSettingMissing)
		}
	case "mysql", "postgres", "postgresql":
		missing := []string{}
		if *s.Username == "" {
			missing = append(missing, "STORAGE_USERNAME")
		}
		if *s.Password == "" {
			missing = append(missing, "STORAGE_PASSWORD")
		}
		if *s.Host == "" {
			missing = append(missing, "STORAGE_HOST")
		}
		if *s.Port == 0 {
			missing = append(missing, "STORAGE_PORT")
		}
		if *s.Database == "" {
			missing = append(missing, "STORAGE_DATABASE")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrSettingMissing,
				strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("%w: STORAGE_MODE is set to %q "+
			"and must be one of sqlite, mysql, postgres or postgresql",
			ErrModeUnknown, *s.Mode)
	}
	return nil
}

func (s Settings) String() string {
	return s.ToLinesNode().String()
}

func (s Settings) ToLinesNode() *gotree.Node {
	node := gotree.New("Storage")
	mode := strings.ToLower(*s.Mode)
	node.Appendf("Mode: %s", mode)
	if mode == "sqlite" {
		node.Appendf("File: %s", *s.File)
		return node
	}
	node.Appendf("Host: %s", *s.Host)
	node.Appendf("Port: %d", *s.Port)
	node.Appendf("Database: %s", *s.Database)
	node.Appendf("Username: %s", *s.Username)
	node.Appendf("Password: %s", gosettings.ObfuscateKey(*s.Password))
	return node
}
