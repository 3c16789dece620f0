package scan

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
)

// Common SSIDs for realistic mock data
var mockSSIDs = []string{
	"HomeNetwork", "NETGEAR-5G", "Starbucks WiFi", "TP-Link_2.4GHz",
	"Linksys", "Office-Network", "Guest-WiFi", "CoffeeShop_Free",
	"Hotel-Guest", "Apartment_5G",
}

var mockChannels24 = []int{1, 6, 11}
var mockChannels5 = []int{36, 40, 44, 48, 149, 153, 157, 161}

// MockProvider synthesizes scan results with hand-built IE buffers so the
// full decode path can run without hardware.
type MockProvider struct {
	rng      *rand.Rand
	networks int
}

// NewMockProvider creates a provider emitting a stable set of networks per
// scan. A fixed seed keeps consecutive runs comparable.
func NewMockProvider(networks int, seed int64) *MockProvider {
	if networks <= 0 {
		networks = 8
	}
	return &MockProvider{
		rng:      rand.New(rand.NewSource(seed)),
		networks: networks,
	}
}

func (m *MockProvider) Interface() string { return "mock0" }
func (m *MockProvider) Close() error      { return nil }

// Scan emits the synthetic networks. RSSI jitters between scans so the
// consumer sees changing data.
func (m *MockProvider) Scan(ctx context.Context) ([]ports.BSSInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]ports.BSSInfo, 0, m.networks)
	for i := 0; i < m.networks; i++ {
		ssid := mockSSIDs[i%len(mockSSIDs)]
		band := domain.Band24GHz
		channel := mockChannels24[i%len(mockChannels24)]
		if i%2 == 1 {
			band = domain.Band5GHz
			channel = mockChannels5[i%len(mockChannels5)]
		}

		results = append(results, ports.BSSInfo{
			SSID:    ssid,
			BSSID:   fmt.Sprintf("02:00:00:00:%02x:%02x", i, i*17%256),
			RSSI:    -40 - m.rng.Intn(50),
			Channel: channel,
			Band:    band,
			IEBytes: m.buildIEs(ssid, channel, i),
		})
	}
	return results, nil
}

// buildIEs assembles a plausible beacon IE stream for one mock network.
func (m *MockProvider) buildIEs(ssid string, channel, i int) []byte {
	record := func(id uint8, payload []byte) []byte {
		return append([]byte{id, uint8(len(payload))}, payload...)
	}

	buf := record(0, []byte(ssid))
	buf = append(buf, record(1, []byte{0x82, 0x84, 0x8B, 0x96, 0x0C, 0x12, 0x18, 0x24})...)
	buf = append(buf, record(3, []byte{uint8(channel)})...)
	buf = append(buf, record(11, []byte{uint8(i % 20), 0x00, uint8(m.rng.Intn(256)), 0x00, 0x00})...)

	// Every other network is WPA2-PSK with HT capabilities.
	if i%2 == 0 {
		buf = append(buf, record(48, []byte{
			0x01, 0x00,
			0x00, 0x0F, 0xAC, 0x04,
			0x01, 0x00, 0x00, 0x0F, 0xAC, 0x04,
			0x01, 0x00, 0x00, 0x0F, 0xAC, 0x02,
			0x00, 0x00,
		})...)
		ht := make([]byte, 26)
		ht[0] = 0x62
		ht[3] = 0xFF
		ht[4] = 0xFF
		buf = append(buf, record(45, ht)...)
	}

	// Every third network advertises WPS.
	if i%3 == 0 {
		wps := []byte{0x00, 0x50, 0xF2, 0x04,
			0x10, 0x44, 0x00, 0x01, 0x02,
			0x10, 0x21, 0x00, 0x04, 'A', 'C', 'M', 'E',
		}
		buf = append(buf, record(221, wps)...)
	}

	return buf
}
