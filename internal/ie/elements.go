package ie

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// decoded is the display form every per-element decoder produces.
type decoded struct {
	Name    string
	Summary string
	Details []string
}

// rawHexLimit caps the hex dump of a payload; anything beyond is elided.
const rawHexLimit = 64

var elementNames = map[uint8]string{
	TagSSID:             "SSID",
	TagSupportedRates:   "Supported Rates",
	TagDSParameterSet:   "DSSS Parameter Set",
	TagTIM:              "TIM",
	TagCountry:          "Country",
	TagBSSLoad:          "BSS Load",
	TagPowerConstraint:  "Power Constraint",
	TagTPCReport:        "TPC Report",
	TagHTCapabilities:   "HT Capabilities",
	TagRSN:              "RSNE",
	TagExtendedRates:    "Extended Supported Rates",
	TagMobilityDomain:   "Mobility Domain",
	TagHTOperation:      "HT Operation",
	TagRMCapabilities:   "RM Enabled Capabilities",
	TagExtCapabilities:  "Extended Capabilities",
	TagVHTCapabilities:  "VHT Capabilities",
	TagVHTOperation:     "VHT Operation",
	TagVendorSpecific:   "Vendor Specific",
	TagElementExtension: "Element Extension",
}

func elementName(id uint8) string {
	if name, ok := elementNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Element %d", id)
}

// hexDump renders the payload as space-separated hex, elided past rawHexLimit.
func hexDump(data []byte) string {
	n := len(data)
	elided := false
	if n > rawHexLimit {
		n = rawHexLimit
		elided = true
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", data[i])
	}
	if elided {
		sb.WriteString(" ...")
	}
	return sb.String()
}

// joinLimit comma-joins items, truncating with an ellipsis past max entries.
func joinLimit(items []string, max int) string {
	if len(items) > max {
		return strings.Join(items[:max], ", ") + ", ..."
	}
	return strings.Join(items, ", ")
}

// decodeGeneric handles unknown element IDs.
func decodeGeneric(id uint8, data []byte) decoded {
	return decoded{
		Name:    elementName(id),
		Summary: "Raw: " + hexDump(data),
	}
}

// HiddenSSID is the display form for absent or unreadable SSIDs.
const HiddenSSID = "<Hidden>"

// decodeSSID returns the SSID string, or HiddenSSID when the body is empty,
// all zero bytes (some APs pad hidden SSIDs), or not valid UTF-8.
func decodeSSID(data []byte) decoded {
	d := decoded{Name: elementName(TagSSID)}

	allZero := true
	for _, b := range data {
		if b != 0x00 {
			allZero = false
			break
		}
	}
	if len(data) == 0 || allZero || !utf8.Valid(data) {
		d.Summary = HiddenSSID
		return d
	}

	d.Summary = string(data)
	return d
}

func decodeDSParameter(data []byte) decoded {
	d := decoded{Name: elementName(TagDSParameterSet)}
	if len(data) >= 1 {
		d.Summary = fmt.Sprintf("Channel %d", data[0])
	}
	return d
}

func decodeTIM(data []byte) decoded {
	d := decoded{Name: elementName(TagTIM)}
	if len(data) >= 2 {
		d.Summary = fmt.Sprintf("DTIM count %d, period %d", data[0], data[1])
		d.Details = []string{
			fmt.Sprintf("DTIM Count: %d", data[0]),
			fmt.Sprintf("DTIM Period: %d", data[1]),
		}
	}
	return d
}

func decodeCountry(data []byte) decoded {
	d := decoded{Name: elementName(TagCountry)}
	if len(data) < 3 {
		return d
	}

	code := string(data[0:2])
	var env string
	switch data[2] {
	case 0x20:
		env = "All"
	case 0x49:
		env = "Indoor"
	case 0x4F:
		env = "Outdoor"
	default:
		env = string(data[2])
	}
	d.Summary = fmt.Sprintf("%s (%s)", code, env)

	// Channel triplets: first channel, channel count, max power dBm
	for offset := 3; offset+3 <= len(data); offset += 3 {
		first := int(data[offset])
		count := int(data[offset+1])
		power := int(data[offset+2])
		d.Details = append(d.Details,
			fmt.Sprintf("Channels %d to %d: %d dBm", first, first+count-1, power))
	}
	return d
}

func decodePowerConstraint(data []byte) decoded {
	d := decoded{Name: elementName(TagPowerConstraint)}
	if len(data) >= 1 {
		d.Summary = fmt.Sprintf("%d dB", data[0])
	}
	return d
}

func decodeTPCReport(data []byte) decoded {
	d := decoded{Name: elementName(TagTPCReport)}
	if len(data) >= 2 {
		d.Summary = fmt.Sprintf("Transmit power %d dBm, link margin %d dB", int8(data[0]), int8(data[1]))
		d.Details = []string{
			fmt.Sprintf("Transmit Power: %d dBm", int8(data[0])),
			fmt.Sprintf("Link Margin: %d dB", int8(data[1])),
		}
	}
	return d
}

// decodeBSSLoad yields the display element plus station count and channel
// utilization percentage for the derived metrics.
func decodeBSSLoad(data []byte) (decoded, *int, *int) {
	d := decoded{Name: elementName(TagBSSLoad)}
	if len(data) < 3 {
		return d, nil, nil
	}

	stations := int(data[0]) | int(data[1])<<8
	// Raw utilization is 0-255
	utilization := (int(data[2])*100 + 127) / 255

	d.Summary = fmt.Sprintf("%d stations, %d%% utilization", stations, utilization)
	d.Details = []string{
		fmt.Sprintf("Station Count: %d", stations),
		fmt.Sprintf("Channel Utilization: %d%%", utilization),
	}
	return d, &stations, &utilization
}

var rmFeatureNames = []string{
	"Link Measurement",
	"Neighbor Report",
	"Beacon Passive Measurement",
	"Beacon Active Measurement",
	"Beacon Table Measurement",
	"LCI Measurement",
	"Location Civic Measurement",
	"FTM Range Reporting",
}

func decodeRMCapabilities(data []byte) decoded {
	d := decoded{Name: elementName(TagRMCapabilities)}
	if len(data) < 1 {
		return d
	}

	var features []string
	for bit, name := range rmFeatureNames {
		if data[0]&(1<<uint(bit)) != 0 {
			features = append(features, name)
		}
	}
	if len(features) == 0 {
		d.Summary = "None"
		return d
	}
	d.Summary = joinLimit(features, 9)
	d.Details = features
	return d
}

// extCapFeatures maps (byte index, bit) pairs to feature names.
var extCapFeatures = []struct {
	octet int
	bit   uint
	name  string
}{
	{0, 2, "Extended Channel Switching"},
	{2, 0, "TFS"},
	{2, 1, "WNM Sleep Mode"},
	{2, 2, "TIM Broadcast"},
	{2, 3, "BSS Transition"},
	{3, 1, "SSID List"},
	{7, 6, "Operating Mode Notification"},
	{9, 5, "TWT Responder"},
}

func decodeExtCapabilities(data []byte) decoded {
	d := decoded{Name: elementName(TagExtCapabilities)}

	var features []string
	for _, f := range extCapFeatures {
		if f.octet < len(data) && data[f.octet]&(1<<f.bit) != 0 {
			features = append(features, f.name)
		}
	}
	if len(features) == 0 {
		d.Summary = "None"
		return d
	}
	d.Summary = joinLimit(features, 9)
	d.Details = features
	return d
}
