package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// setupInMemoryDB creates a new SQLiteAdapter used for testing
func setupInMemoryDB(t *testing.T) *SQLiteAdapter {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&SnapshotModel{}, &NetworkModel{}, &ElementModel{})
	require.NoError(t, err)

	return &SQLiteAdapter{db: db}
}

func sampleSnapshot(cycleID string, taken time.Time) domain.Snapshot {
	util := 50
	stations := 12
	ft := true

	return domain.Snapshot{
		CycleID:   cycleID,
		Taken:     taken,
		Interface: "wlan0",
		Networks: []domain.Network{
			{
				SSID:         "TestNet",
				BSSID:        "aa:bb:cc:dd:ee:ff",
				Vendor:       "TestVendor",
				RSSI:         -55,
				Channel:      6,
				Frequency:    2437,
				Band:         domain.Band24GHz,
				ChannelWidth: 40,
				Standard:     string(domain.Gen11N),
				BasicRates:   []float64{1, 2, 5.5, 11},
				MinRate:      1,
				MaxRate:      150,
				Elements: []domain.InformationElement{
					{
						ID:        "0-0",
						ElementID: 0,
						Length:    7,
						Name:      "SSID",
						Summary:   "TestNet",
						RawHex:    "54 65 73 74 4e 65 74",
					},
					{
						ID:          "11-3",
						ElementID:   11,
						Length:      5,
						Name:        "BSS Load",
						Summary:     "12 stations, 50% utilization",
						DetailLines: []string{"Station Count: 12"},
						RawHex:      "0c 00 80 00 00",
					},
				},
				Derived: domain.DerivedMetrics{
					ChannelUtilization: &util,
					StationCount:       &stations,
					FastTransition:     &ft,
					Security: &domain.RSNInfo{
						Version:         1,
						GroupCipher:     "CCMP-128",
						PairwiseCiphers: []string{"CCMP-128"},
						AKMSuites:       []string{"PSK"},
					},
				},
				CycleID:  cycleID,
				LastSeen: taken,
			},
		},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	adapter := setupInMemoryDB(t)

	taken := time.Now().Truncate(time.Second)
	snap := sampleSnapshot("cycle-1", taken)

	require.NoError(t, adapter.SaveSnapshot(snap))

	loaded, err := adapter.LatestSnapshot()
	require.NoError(t, err)

	assert.Equal(t, "cycle-1", loaded.CycleID)
	assert.Equal(t, "wlan0", loaded.Interface)
	require.Len(t, loaded.Networks, 1)

	n := loaded.Networks[0]
	assert.Equal(t, "TestNet", n.SSID)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", n.BSSID)
	assert.Equal(t, domain.Band24GHz, n.Band)
	assert.Equal(t, []float64{1, 2, 5.5, 11}, n.BasicRates)
	assert.Equal(t, 150.0, n.MaxRate)

	require.NotNil(t, n.Derived.ChannelUtilization)
	assert.Equal(t, 50, *n.Derived.ChannelUtilization)
	require.NotNil(t, n.Derived.StationCount)
	assert.Equal(t, 12, *n.Derived.StationCount)
	require.NotNil(t, n.Derived.Security)
	assert.Equal(t, "CCMP-128", n.Derived.Security.GroupCipher)

	require.Len(t, n.Elements, 2)
	assert.Equal(t, "0-0", n.Elements[0].ID)
	assert.Equal(t, uint8(11), n.Elements[1].ElementID)
	assert.Equal(t, []string{"Station Count: 12"}, n.Elements[1].DetailLines)
}

func TestLatestSnapshot_PicksNewest(t *testing.T) {
	adapter := setupInMemoryDB(t)

	base := time.Now().Truncate(time.Second)
	require.NoError(t, adapter.SaveSnapshot(sampleSnapshot("cycle-old", base.Add(-time.Minute))))
	require.NoError(t, adapter.SaveSnapshot(sampleSnapshot("cycle-new", base)))

	loaded, err := adapter.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "cycle-new", loaded.CycleID)
}

func TestLatestSnapshot_Empty(t *testing.T) {
	adapter := setupInMemoryDB(t)

	_, err := adapter.LatestSnapshot()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConverterRoundTrip(t *testing.T) {
	taken := time.Now().Truncate(time.Second)
	snap := sampleSnapshot("cycle-rt", taken)

	restored := toDomain(toModel(snap))

	assert.Equal(t, snap.CycleID, restored.CycleID)
	require.Len(t, restored.Networks, 1)
	assert.Equal(t, snap.Networks[0].Derived, restored.Networks[0].Derived)
	assert.Equal(t, snap.Networks[0].Elements, restored.Networks[0].Elements)
}
