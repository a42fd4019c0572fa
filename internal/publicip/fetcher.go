// Package publicip obtains the current public IP address from an
// ordered list of HTTP and DNS echo providers, tolerating individual
// provider outages.
package publicip

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
)

var ErrProvidersExhausted = errors.New("failed to retrieve the public IP address from every provider")

type Logger interface {
	Debug(s string)
	Warn(s string)
}

type provider struct {
	url     string          // set for HTTP providers
	dnsData dnsProviderData // set for DNS echo providers
}

func (p provider) String() string {
	if p.url != "" {
		return p.url
	}
	return "dns:" + p.dnsData.name
}

type Fetcher struct {
	client    *http.Client
	dnsClient *dns.Client
	providers []provider
	timeout   time.Duration
	logger    Logger
}

// NewFetcher creates a fetcher trying each HTTP provider then each
// DNS provider in the order given by the settings.
func NewFetcher(settings Settings, client *http.Client,
	logger Logger) (fetcher *Fetcher, err error) {
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	providers := make([]provider, 0,
		len(settings.HTTPProviders)+len(settings.DNSProviders))
	for _, providerURL := range settings.HTTPProviders {
		providers = append(providers, provider{url: providerURL})
	}
	for _, name := range settings.DNSProviders {
		data, err := dnsProviderByName(name)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider{dnsData: data})
	}

	return &Fetcher{
		client:    client,
		dnsClient: &dns.Client{},
		providers: providers,
		timeout:   settings.Timeout,
		logger:    logger,
	}, nil
}

// IP returns the first public IP address successfully retrieved,
// trying each provider in order. A single provider failing is
// logged and never fatal; only exhausting all the providers is,
// and the returned error then lists every provider attempted.
func (f *Fetcher) IP(ctx context.Context) (publicIP netip.Addr, err error) {
	attempted := make([]string, 0, len(f.providers))
	for _, p := range f.providers {
		attempted = append(attempted, p.String())
		f.logger.Debug("fetching public IP address from " + p.String())

		providerCtx, cancel := context.WithTimeout(ctx, f.timeout)
		publicIP, err = f.fetch(providerCtx, p)
		cancel()
		if err != nil {
			f.logger.Warn("fetching public IP address from " +
				p.String() + ": " + err.Error())
			continue
		}
		return publicIP, nil
	}
	return netip.Addr{}, fmt.Errorf("%w: %s",
		ErrProvidersExhausted, strings.Join(attempted, ", "))
}

func (f *Fetcher) fetch(ctx context.Context, p provider) (
	publicIP netip.Addr, err error) {
	if p.url != "" {
		return fetchHTTP(ctx, f.client, p.url)
	}
	return fetchDNS(ctx, f.dnsClient, p.dnsData)
}
