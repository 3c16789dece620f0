//go:build linux

package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdlayher/wifi"

	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
	"github.com/lcalzada-xor/wsurvey/internal/radio"
)

// NL80211Provider reads the wireless state of a local interface over
// nl80211. The generic netlink surface exposes identity fields for the
// associated BSS but not the raw IE buffer, so networks from this provider
// exercise the band/channel fallback paths; full IE decoding needs the pcap
// provider or a platform that hands over beacon bytes.
type NL80211Provider struct {
	client *wifi.Client
	iface  string
}

// NewNL80211Provider opens a netlink client bound to the named interface.
// An empty name selects the first wireless interface found.
func NewNL80211Provider(iface string) (*NL80211Provider, error) {
	client, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("nl80211 client: %w", err)
	}
	return &NL80211Provider{client: client, iface: iface}, nil
}

func (p *NL80211Provider) Interface() string { return p.iface }

func (p *NL80211Provider) Close() error { return p.client.Close() }

// Scan reports the BSS state of the bound interface.
func (p *NL80211Provider) Scan(ctx context.Context) ([]ports.BSSInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ifaces, err := p.client.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	var results []ports.BSSInfo
	for _, ifi := range ifaces {
		if ifi.Name == "" {
			continue
		}
		if p.iface != "" && ifi.Name != p.iface {
			continue
		}
		if p.iface == "" {
			p.iface = ifi.Name
		}

		bss, err := p.client.BSS(ifi)
		if err != nil {
			slog.Debug("No BSS for interface", "interface", ifi.Name, "error", err)
			continue
		}

		results = append(results, ports.BSSInfo{
			SSID:      bss.SSID,
			BSSID:     bss.BSSID.String(),
			Frequency: bss.Frequency,
			Channel:   radio.FrequencyToChannel(bss.Frequency),
			Band:      radio.BandForFrequency(bss.Frequency),
		})
	}
	return results, nil
}
