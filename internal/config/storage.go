package config

import (
	"github.com/qdm12/gosettings/reader"
)

func (c *Config) readStorage(r *reader.Reader) (err error) {
	c.Storage.Mode = r.Get("STORAGE_MODE")
	c.Storage.File = r.Get("STORAGE_SQLITE_PATH", reader.ForceLowercase(false))
	c.Storage.Username = r.Get("STORAGE_USERNAME", reader.ForceLowercase(false))
	c.Storage.Password = r.Get("STORAGE_PASSWORD", reader.ForceLowercase(false))
	c.Storage.Host = r.Get("STORAGE_HOST", reader.ForceLowercase(false))
	c.Storage.Port, err = r.Uint16Ptr("STORAGE_PORT")
	if err != nil {
		return err
	}
	c.Storage.Database = r.Get("STORAGE_DATABASE", reader.ForceLowercase(false))
	return nil
}
