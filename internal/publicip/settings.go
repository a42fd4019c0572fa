package publicip

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
)

type Settings struct {
	// HTTPProviders are URLs echoing the client public IP address
	// in their response body, tried in the given order.
	HTTPProviders []string
	// DNSProviders are DNS echo providers tried in the given order
	// after the HTTP providers, each one of opendns or cloudflare.
	DNSProviders []string
	// Timeout bounds each single provider query.
	Timeout time.Duration
}

func (s *Settings) SetDefaults() {
	s.HTTPProviders = gosettings.DefaultSlice(s.HTTPProviders, []string{
		"https://ident.me",
		"https://api.ipify.org",
		"https://icanhazip.com",
	})
	s.DNSProviders = gosettings.DefaultSlice(s.DNSProviders, []string{})
	const defaultTimeout = 10 * time.Second
	s.Timeout = gosettings.DefaultComparable(s.Timeout, defaultTimeout)
}

var (
	ErrNoProviderSet      = errors.New("no provider set")
	ErrHTTPProviderScheme = errors.New("http provider URL scheme must be https")
	ErrHTTPProviderURL    = errors.New("http provider URL is invalid")
	ErrTimeoutTooLow      = errors.New("timeout is too low")
)

func (s Settings) Validate() (err error) {
	if len(s.HTTPProviders)+len(s.DNSProviders) == 0 {
		return fmt.Errorf("%w: PUBLICIP_HTTP_PROVIDERS and "+
			"PUBLICIP_DNS_PROVIDERS are both empty", ErrNoProviderSet)
	}

	for _, providerURL := range s.HTTPProviders {
		parsedURL, err := url.Parse(providerURL)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrHTTPProviderURL, providerURL)
		}
		if parsedURL.Scheme != "https" {
			return fmt.Errorf("%w: %s", ErrHTTPProviderScheme, providerURL)
		}
	}

	for _, name := range s.DNSProviders {
		_, err = dnsProviderByName(name)
		if err != nil {
			return err
		}
	}

	const minTimeout = 10 * time.Millisecond
	if s.Timeout < minTimeout {
		return fmt.Errorf("%w: %s is below the minimum %s",
			ErrTimeoutTooLow, s.Timeout, minTimeout)
	}

	return nil
}

func (s Settings) String() string {
	return s.ToLinesNode().String()
}

func (s Settings) ToLinesNode() *gotree.Node {
	node := gotree.New("Public IP")
	childNode := node.Appendf("HTTP providers")
	for _, providerURL := range s.HTTPProviders {
		childNode.Appendf(providerURL)
	}
	if len(s.DNSProviders) > 0 {
		childNode = node.Appendf("DNS providers")
		for _, name := range s.DNSProviders {
			childNode.Appendf(name)
		}
	}
	node.Appendf("Timeout per provider: %s", s.Timeout)
	return node
}
