package publicip

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
)

var (
	ErrDNSProviderUnknown = errors.New("unknown public IP echo DNS provider")
	ErrAnswerNotFound     = errors.New("no address found in DNS answer")
)

type dnsProviderData struct {
	name       string
	nameserver string // host:port
	fqdn       string
	qType      uint16
	qClass     uint16
}

func dnsProviderByName(name string) (data dnsProviderData, err error) {
	switch strings.ToLower(name) {
	case "opendns":
		return dnsProviderData{
			name:       "opendns",
			nameserver: "dns.opendns.com:53",
			fqdn:       "myip.opendns.com.",
			qType:      dns.TypeANY,
			qClass:     dns.ClassINET,
		}, nil
	case "cloudflare":
		return dnsProviderData{
			name:       "cloudflare",
			nameserver: "one.one.one.one:53",
			fqdn:       "whoami.cloudflare.",
			qType:      dns.TypeTXT,
			qClass:     dns.ClassCHAOS,
		}, nil
	default:
		return data, fmt.Errorf("%w: %s", ErrDNSProviderUnknown, name)
	}
}

type dnsExchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, address string) (
		r *dns.Msg, rtt time.Duration, err error)
}

func fetchDNS(ctx context.Context, client dnsExchanger,
	data dnsProviderData) (publicIP netip.Addr, err error) {
	message := new(dns.Msg)
	message.Id = dns.Id()
	message.RecursionDesired = true
	message.Question = []dns.Question{{
		Name:   data.fqdn,
		Qtype:  data.qType,
		Qclass: data.qClass,
	}}

	response, _, err := client.ExchangeContext(ctx, message, data.nameserver)
	if err != nil {
		return publicIP, err
	}

	for _, rr := range response.Answer {
		switch record := rr.(type) {
		case *dns.TXT:
			for _, txt := range record.Txt {
				publicIP, err = netip.ParseAddr(txt)
				if err == nil {
					return publicIP, nil
				}
			}
		case *dns.A:
			publicIP, ok := netip.AddrFromSlice(record.A)
			if ok {
				return publicIP.Unmap(), nil
			}
		case *dns.AAAA:
			publicIP, ok := netip.AddrFromSlice(record.AAAA)
			if ok {
				return publicIP, nil
			}
		}
	}

	return netip.Addr{}, fmt.Errorf("%w: for %s queried on %s",
		ErrAnswerNotFound, data.fqdn, data.nameserver)
}
