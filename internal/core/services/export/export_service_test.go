package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

func testSnapshot() domain.Snapshot {
	util := 50
	stations := 3

	return domain.Snapshot{
		CycleID:   "cycle-export",
		Taken:     time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Interface: "wlan0",
		Networks: []domain.Network{
			{
				SSID:         "CafeNet",
				BSSID:        "aa:bb:cc:00:11:22",
				Vendor:       "TP-Link",
				RSSI:         -48,
				Channel:      6,
				Frequency:    2437,
				Band:         domain.Band24GHz,
				ChannelWidth: 20,
				Standard:     string(domain.Gen11N),
				BasicRates:   []float64{1, 2, 5.5, 11},
				MinRate:      1,
				MaxRate:      72,
				Derived: domain.DerivedMetrics{
					ChannelUtilization: &util,
					StationCount:       &stations,
					Security: &domain.RSNInfo{
						Version:         1,
						GroupCipher:     "CCMP-128",
						PairwiseCiphers: []string{"CCMP-128"},
						AKMSuites:       []string{"PSK"},
					},
					WPS: &domain.WPSInfo{Configured: true},
				},
				LastSeen: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
			},
			{
				SSID:      "OpenNet",
				BSSID:     "aa:bb:cc:00:11:33",
				RSSI:      -70,
				Channel:   36,
				Frequency: 5180,
				Band:      domain.Band5GHz,
				Standard:  string(domain.Gen11AC),
				MaxRate:   433,
				LastSeen:  time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, testSnapshot()))

	var decoded domain.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "cycle-export", decoded.CycleID)
	require.Len(t, decoded.Networks, 2)
	assert.Equal(t, "CafeNet", decoded.Networks[0].SSID)
	require.NotNil(t, decoded.Networks[0].Derived.ChannelUtilization)
	assert.Equal(t, 50, *decoded.Networks[0].Derived.ChannelUtilization)
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, testSnapshot()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 networks

	header := records[0]
	assert.Equal(t, "BSSID", header[0])
	assert.Equal(t, "LastSeen", header[len(header)-1])

	secured := records[1]
	assert.Equal(t, "aa:bb:cc:00:11:22", secured[0])
	assert.Equal(t, "CafeNet", secured[1])
	assert.Equal(t, "2.4 GHz", secured[6])
	assert.Equal(t, "1 2 5.5 11", secured[9])
	assert.Equal(t, "50", secured[12])
	assert.Equal(t, "PSK (CCMP-128)", secured[16])
	assert.Equal(t, "Configured", secured[17])

	open := records[2]
	assert.Equal(t, "OpenNet", open[1])
	assert.Equal(t, "Open", open[16])
	assert.Equal(t, "", open[17])
	assert.Equal(t, "", open[12]) // no utilization reported
}

func TestExportCSV_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, domain.Snapshot{}))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
