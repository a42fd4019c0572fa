package config

import (
	"github.com/qdm12/gosettings/reader"
)

func (c *Config) readPubIP(r *reader.Reader) (err error) {
	c.PubIP.HTTPProviders = r.CSV("PUBLICIP_HTTP_PROVIDERS",
		reader.ForceLowercase(false))
	c.PubIP.DNSProviders = r.CSV("PUBLICIP_DNS_PROVIDERS")
	c.PubIP.Timeout, err = r.Duration("PUBLICIP_FETCH_TIMEOUT")
	return err
}
