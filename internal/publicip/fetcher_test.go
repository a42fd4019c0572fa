package publicip

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	debugs []string
	warns  []string
}

func (l *testLogger) Debug(s string) { l.debugs = append(l.debugs, s) }
func (l *testLogger) Warn(s string)  { l.warns = append(l.warns, s) }

func Test_NewFetcher(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		settings   Settings
		providers  []string
		errWrapped error
	}{
		"defaults": {
			settings: Settings{},
			providers: []string{
				"https://ident.me",
				"https://api.ipify.org",
				"https://icanhazip.com",
			},
		},
		"http then dns order": {
			settings: Settings{
				HTTPProviders: []string{"https://ifconfig.co"},
				DNSProviders:  []string{"cloudflare", "opendns"},
			},
			providers: []string{
				"https://ifconfig.co",
				"dns:cloudflare",
				"dns:opendns",
			},
		},
		"http scheme rejected": {
			settings: Settings{
				HTTPProviders: []string{"http://ident.me"},
			},
			errWrapped: ErrHTTPProviderScheme,
		},
		"unknown dns provider": {
			settings: Settings{
				DNSProviders: []string{"quad9"},
			},
			errWrapped: ErrDNSProviderUnknown,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fetcher, err := NewFetcher(testCase.settings,
				&http.Client{}, &testLogger{})

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				return
			}
			require.NotNil(t, fetcher)
			providerStrings := make([]string, len(fetcher.providers))
			for i, p := range fetcher.providers {
				providerStrings[i] = p.String()
			}
			assert.Equal(t, testCase.providers, providerStrings)
		})
	}
}

func Test_Fetcher_IP_fallback(t *testing.T) {
	t.Parallel()

	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Host == "a.invalid" {
				return nil, errors.New("connection refused")
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("55.55.55.55")),
			}, nil
		}),
	}
	logger := &testLogger{}
	fetcher := &Fetcher{
		client: client,
		providers: []provider{
			{url: "https://a.invalid"},
			{url: "https://b.invalid"},
		},
		timeout: time.Second,
		logger:  logger,
	}

	publicIP, err := fetcher.IP(context.Background())

	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("55.55.55.55"), publicIP)
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], "https://a.invalid")
}

func Test_Fetcher_IP_allProvidersFail(t *testing.T) {
	t.Parallel()

	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
	}
	fetcher := &Fetcher{
		client: client,
		providers: []provider{
			{url: "https://a.invalid"},
			{url: "https://b.invalid"},
		},
		timeout: time.Second,
		logger:  &testLogger{},
	}

	publicIP, err := fetcher.IP(context.Background())

	assert.Equal(t, netip.Addr{}, publicIP)
	assert.ErrorIs(t, err, ErrProvidersExhausted)
	assert.EqualError(t, err,
		"failed to retrieve the public IP address from every provider: "+
			"https://a.invalid, https://b.invalid")
}
