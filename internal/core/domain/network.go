package domain

import "time"

// Band identifies the frequency band a network operates in.
type Band int

const (
	BandUnknown Band = iota
	Band24GHz        // 2.4 GHz
	Band5GHz         // 5 GHz
	Band6GHz         // 6 GHz (WiFi 6E)
)

// String returns the display form of the band.
func (b Band) String() string {
	switch b {
	case Band24GHz:
		return "2.4 GHz"
	case Band5GHz:
		return "5 GHz"
	case Band6GHz:
		return "6 GHz"
	default:
		return "Unknown"
	}
}

// Generation identifies the PHY generation of a network.
type Generation string

const (
	Gen11B     Generation = "802.11b"
	Gen11A     Generation = "802.11a"
	Gen11G     Generation = "802.11g"
	Gen11N     Generation = "802.11n (WiFi 4)"
	Gen11AC    Generation = "802.11ac (WiFi 5)"
	Gen11AX    Generation = "802.11ax (WiFi 6)"
	GenUnknown Generation = ""
)

// Network represents one observed BSS: the identity fields supplied by the
// scan provider merged with everything derived from its IE bytes.
type Network struct {
	SSID         string `json:"ssid"`
	BSSID        string `json:"bssid"`
	Vendor       string `json:"vendor,omitempty"` // Resolved from BSSID OUI
	RSSI         int    `json:"rssi"`
	Channel      int    `json:"channel,omitempty"`
	Frequency    int    `json:"freq,omitempty"` // Center frequency in MHz
	Band         Band   `json:"band"`
	ChannelWidth int    `json:"bw,omitempty"` // 20, 40, 80, 160 MHz
	Standard     string `json:"standard,omitempty"`

	// Rate estimates in Mbps. MinRate may be a labeled fallback (10% of
	// max) when the provider supplies nothing authoritative.
	BasicRates []float64 `json:"basic_rates,omitempty"`
	MinRate    float64   `json:"min_rate,omitempty"`
	MaxRate    float64   `json:"max_rate,omitempty"`

	Elements []InformationElement `json:"elements,omitempty"`
	Derived  DerivedMetrics       `json:"derived"`

	CycleID  string    `json:"cycle_id,omitempty"` // Scan cycle this observation belongs to
	LastSeen time.Time `json:"last_seen"`
}

// InformationElement is one decoded TLV record from the IE stream.
type InformationElement struct {
	ID          string   `json:"id"` // "<element_id>-<sequence>", stable within a decode
	ElementID   uint8    `json:"element_id"`
	Length      uint8    `json:"length"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	DetailLines []string `json:"details,omitempty"`
	RawHex      string   `json:"raw_hex"`
}

// DerivedMetrics aggregates cross-cutting values folded out of the decoded
// elements of one scan. Pointer fields are nil when no element supplied them.
type DerivedMetrics struct {
	ChannelUtilization *int     `json:"channel_utilization,omitempty"` // 0-100 %
	StationCount       *int     `json:"station_count,omitempty"`
	FastTransition     *bool    `json:"fast_transition,omitempty"`
	SpatialStreams     *int     `json:"spatial_streams,omitempty"`
	ProtectionMode     string   `json:"protection_mode,omitempty"`
	Security           *RSNInfo `json:"security,omitempty"`
	WPS                *WPSInfo `json:"wps,omitempty"`
}

// RSNInfo contains the parsed RSN element details.
type RSNInfo struct {
	Version         uint16   `json:"version"`
	GroupCipher     string   `json:"group_cipher"`
	PairwiseCiphers []string `json:"pairwise_ciphers"`
	AKMSuites       []string `json:"akm_suites"`
	Capabilities    []string `json:"capabilities,omitempty"`
}

// WPSInfo contains device metadata from the WPS vendor attribute block.
type WPSInfo struct {
	Configured        bool     `json:"configured"`
	Manufacturer      string   `json:"manufacturer,omitempty"`
	ModelName         string   `json:"model_name,omitempty"`
	ModelNumber       string   `json:"model_number,omitempty"`
	SerialNumber      string   `json:"serial_number,omitempty"`
	DeviceName        string   `json:"device_name,omitempty"`
	PrimaryDeviceType string   `json:"primary_device_type,omitempty"`
	IsAccessPoint     bool     `json:"is_access_point"`
	SupportedMethods  []string `json:"supported_methods,omitempty"`
}

// Snapshot is the output of one survey cycle.
type Snapshot struct {
	CycleID   string    `json:"cycle_id"`
	Taken     time.Time `json:"taken"`
	Networks  []Network `json:"networks"`
	Interface string    `json:"interface,omitempty"`
}
