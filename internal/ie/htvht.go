package ie

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// decodeHTCapabilities parses element 45 and returns the spatial stream
// count derived from the supported MCS set (one stream per non-zero byte
// among the first four RX MCS bitmask bytes).
func decodeHTCapabilities(data []byte) (decoded, int) {
	d := decoded{Name: elementName(TagHTCapabilities)}
	if len(data) < 2 {
		d.Summary = "Raw: " + hexDump(data)
		return d, 0
	}

	capInfo := binary.LittleEndian.Uint16(data[0:2])
	var features []string
	if capInfo&0x0002 != 0 {
		features = append(features, "40 MHz")
	} else {
		features = append(features, "20 MHz")
	}
	if capInfo&0x0020 != 0 {
		features = append(features, "Short GI 20 MHz")
	}
	if capInfo&0x0040 != 0 {
		features = append(features, "Short GI 40 MHz")
	}

	// Supported MCS set starts at byte 3; the first 4 bytes are the RX
	// bitmask for streams 1-4.
	streams := 0
	if len(data) >= 7 {
		for _, b := range data[3:7] {
			if b != 0 {
				streams++
			}
		}
	}
	if streams > 0 {
		features = append(features, fmt.Sprintf("%d spatial streams", streams))
	}

	d.Summary = strings.Join(features, ", ")
	d.Details = features
	return d, streams
}

// decodeHTOperation parses element 61 and returns the protection mode label.
func decodeHTOperation(data []byte) (decoded, string) {
	d := decoded{Name: elementName(TagHTOperation)}
	if len(data) < 3 {
		d.Summary = "Raw: " + hexDump(data)
		return d, ""
	}

	primary := data[0]

	var secondary string
	switch data[1] & 0x03 {
	case 1:
		secondary = "+1"
	case 3:
		secondary = "-1"
	default:
		secondary = "0"
	}
	anyWidth := data[1]&0x04 != 0

	var protection string
	switch data[2] & 0x03 {
	case 0:
		protection = "None"
	case 1:
		protection = "Non-member"
	case 2:
		protection = "20 MHz"
	case 3:
		protection = "Non-HT mixed"
	}

	d.Summary = fmt.Sprintf("Channel %d, offset %s, protection %s", primary, secondary, protection)
	d.Details = []string{
		fmt.Sprintf("Primary Channel: %d", primary),
		"Secondary Channel Offset: " + secondary,
		fmt.Sprintf("Any Channel Width: %t", anyWidth),
		"Protection Mode: " + protection,
	}
	return d, protection
}

// mcsMapStreams counts supported streams in a VHT/HE style RX MCS map:
// eight 2-bit slots where the value 3 means not supported.
func mcsMapStreams(mcsMap uint16) int {
	streams := 0
	for slot := 0; slot < 8; slot++ {
		if (mcsMap>>(uint(slot)*2))&0x03 != 0x03 {
			streams++
		}
	}
	return streams
}

// decodeVHTCapabilities parses element 191.
func decodeVHTCapabilities(data []byte) (decoded, int) {
	d := decoded{Name: elementName(TagVHTCapabilities)}
	if len(data) < 6 {
		d.Summary = "Raw: " + hexDump(data)
		return d, 0
	}

	capInfo := binary.LittleEndian.Uint32(data[0:4])
	var features []string
	if capInfo&0x00000020 != 0 {
		features = append(features, "Short GI 80 MHz")
	}
	if capInfo&0x00000040 != 0 {
		features = append(features, "Short GI 160 MHz")
	}

	streams := mcsMapStreams(binary.LittleEndian.Uint16(data[4:6]))
	if streams > 0 {
		features = append(features, fmt.Sprintf("%d spatial streams", streams))
	}

	d.Summary = strings.Join(features, ", ")
	d.Details = features
	return d, streams
}

// decodeVHTOperation parses element 192.
func decodeVHTOperation(data []byte) decoded {
	d := decoded{Name: elementName(TagVHTOperation)}
	if len(data) < 3 {
		d.Summary = "Raw: " + hexDump(data)
		return d
	}

	var width string
	switch data[0] {
	case 0:
		width = "20/40 MHz"
	case 1:
		width = "80 MHz"
	case 2:
		width = "160 MHz or 80+80 MHz"
	default:
		width = fmt.Sprintf("Width %d", data[0])
	}

	d.Summary = width
	d.Details = []string{
		"Channel Width: " + width,
		fmt.Sprintf("Center Frequency Segment 0: %d", data[1]),
		fmt.Sprintf("Center Frequency Segment 1: %d", data[2]),
	}
	return d
}

// decodeMobilityDomain parses element 54 (802.11r). Its presence alone
// marks the network as fast-transition capable.
func decodeMobilityDomain(data []byte) decoded {
	d := decoded{Name: elementName(TagMobilityDomain)}
	if len(data) < 3 {
		d.Summary = "Raw: " + hexDump(data)
		return d
	}

	mdid := binary.LittleEndian.Uint16(data[0:2])
	overDS := data[2]&0x01 != 0
	resourceReq := data[2]&0x02 != 0

	d.Summary = fmt.Sprintf("MDID 0x%04x", mdid)
	d.Details = []string{
		fmt.Sprintf("Mobility Domain ID: 0x%04x", mdid),
		fmt.Sprintf("FT over DS: %t", overDS),
		fmt.Sprintf("Resource Request Protocol: %t", resourceReq),
	}
	return d
}
