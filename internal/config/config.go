// Package config gathers all the settings of the program, read from
// environment variables, with explicit defaults and validation.
package config

import (
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
	"github.com/qdm12/ipget/internal/persistence"
	"github.com/qdm12/ipget/internal/publicip"
)

type Config struct {
	Storage  persistence.Settings
	PubIP    publicip.Settings
	Health   Health
	Shoutrrr Shoutrrr
	Logger   Logger
}

func (c *Config) Read(r *reader.Reader) (err error) {
	err = c.readStorage(r)
	if err != nil {
		return fmt.Errorf("reading storage settings: %w", err)
	}

	err = c.readPubIP(r)
	if err != nil {
		return fmt.Errorf("reading public IP settings: %w", err)
	}

	c.Health.read(r)
	c.Shoutrrr.read(r)

	err = c.Logger.read(r)
	if err != nil {
		return fmt.Errorf("reading logger settings: %w", err)
	}

	return nil
}

func (c *Config) SetDefaults() {
	c.Storage.SetDefaults()
	c.PubIP.SetDefaults()
	c.Health.setDefaults()
	c.Shoutrrr.setDefaults()
	c.Logger.setDefaults()
}

func (c Config) Validate() (err error) {
	type validator interface {
		Validate() (err error)
	}
	// Shoutrrr settings are deliberately absent: invalid notification
	// addresses downgrade the notifier to disabled at setup time
	// instead of aborting the run.
	toValidate := map[string]validator{
		"storage":   &c.Storage,
		"public ip": &c.PubIP,
		"health":    &c.Health,
		"logger":    &c.Logger,
	}

	for name, v := range toValidate {
		err = v.Validate()
		if err != nil {
			return fmt.Errorf("%s settings: %w", name, err)
		}
	}

	return nil
}

func (c Config) String() string {
	return c.toLinesNode().String()
}

func (c Config) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	node.AppendNode(c.Storage.ToLinesNode())
	node.AppendNode(c.PubIP.ToLinesNode())
	node.AppendNode(c.Health.toLinesNode())
	node.AppendNode(c.Shoutrrr.toLinesNode())
	node.AppendNode(c.Logger.toLinesNode())
	return node
}
