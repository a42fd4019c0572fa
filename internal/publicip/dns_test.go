package publicip

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_dnsProviderByName(t *testing.T) {
	t.Parallel()

	data, err := dnsProviderByName("OpenDNS")
	require.NoError(t, err)
	assert.Equal(t, "dns.opendns.com:53", data.nameserver)
	assert.Equal(t, "myip.opendns.com.", data.fqdn)

	data, err = dnsProviderByName("cloudflare")
	require.NoError(t, err)
	assert.Equal(t, "one.one.one.one:53", data.nameserver)
	assert.Equal(t, dns.ClassCHAOS, int(data.qClass))

	_, err = dnsProviderByName("quad9")
	assert.ErrorIs(t, err, ErrDNSProviderUnknown)
	assert.EqualError(t, err, "unknown public IP echo DNS provider: quad9")
}

type testExchanger struct {
	response *dns.Msg
	err      error

	requestMessage *dns.Msg
	requestAddress string
}

func (e *testExchanger) ExchangeContext(_ context.Context, m *dns.Msg,
	address string) (r *dns.Msg, rtt time.Duration, err error) {
	e.requestMessage = m
	e.requestAddress = address
	return e.response, 0, e.err
}

func Test_fetchDNS(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		answer     []dns.RR
		publicIP   netip.Addr
		errWrapped error
	}{
		"txt answer": {
			answer: []dns.RR{&dns.TXT{
				Txt: []string{"55.55.55.55"},
			}},
			publicIP: netip.MustParseAddr("55.55.55.55"),
		},
		"a answer": {
			answer: []dns.RR{&dns.A{
				A: []byte{55, 55, 55, 55},
			}},
			publicIP: netip.MustParseAddr("55.55.55.55"),
		},
		"aaaa answer": {
			answer: []dns.RR{&dns.AAAA{
				AAAA: netip.MustParseAddr("2001:db8::1").AsSlice(),
			}},
			publicIP: netip.MustParseAddr("2001:db8::1"),
		},
		"no usable answer": {
			answer: []dns.RR{&dns.TXT{
				Txt: []string{"not an address"},
			}},
			errWrapped: ErrAnswerNotFound,
		},
		"empty answer": {
			errWrapped: ErrAnswerNotFound,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			exchanger := &testExchanger{
				response: &dns.Msg{Answer: testCase.answer},
			}
			data, err := dnsProviderByName("cloudflare")
			require.NoError(t, err)

			publicIP, err := fetchDNS(context.Background(), exchanger, data)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped == nil {
				assert.Equal(t, testCase.publicIP, publicIP)
			}
			assert.Equal(t, "one.one.one.one:53", exchanger.requestAddress)
			require.Len(t, exchanger.requestMessage.Question, 1)
			assert.Equal(t, "whoami.cloudflare.",
				exchanger.requestMessage.Question[0].Name)
		})
	}
}
