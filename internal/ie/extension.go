package ie

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// decodeExtension parses element 255, whose first payload byte selects the
// actual element. Returns the HE spatial stream count when the extension is
// HE Capabilities, otherwise 0.
func decodeExtension(data []byte) (decoded, int) {
	if len(data) < 1 {
		return decoded{
			Name:    elementName(TagElementExtension),
			Summary: "Raw: " + hexDump(data),
		}, 0
	}

	extID := data[0]
	body := data[1:]

	switch extID {
	case ExtHECapabilities:
		return decodeHECapabilities(body)
	case ExtHEOperation:
		return decodeHEOperation(body), 0
	case ExtSpatialReuse:
		return decodeSpatialReuse(body), 0
	case ExtMUEDCA:
		return decoded{
			Name:    "MU EDCA Parameter Set",
			Summary: "MU EDCA parameters",
		}, 0
	default:
		return decoded{
			Name:    fmt.Sprintf("Extension %d", extID),
			Summary: "Raw: " + hexDump(body),
		}, 0
	}
}

// heMACLen and hePHYLen are the fixed field sizes preceding the HE RX MCS
// map inside HE Capabilities.
const (
	heMACLen = 6
	hePHYLen = 11
)

func decodeHECapabilities(body []byte) (decoded, int) {
	d := decoded{Name: "HE Capabilities"}
	if len(body) < heMACLen+hePHYLen+2 {
		d.Summary = "Raw: " + hexDump(body)
		return d, 0
	}

	mcsMap := binary.LittleEndian.Uint16(body[heMACLen+hePHYLen : heMACLen+hePHYLen+2])
	streams := mcsMapStreams(mcsMap)

	features := []string{fmt.Sprintf("%d spatial streams", streams)}
	d.Summary = strings.Join(features, ", ")
	d.Details = features
	return d, streams
}

func decodeHEOperation(body []byte) decoded {
	d := decoded{Name: "HE Operation"}
	if len(body) < 1 {
		d.Summary = "Raw: " + hexDump(body)
		return d
	}

	color := body[0] & 0x3F
	disabled := body[0]&0x40 != 0

	if disabled {
		d.Summary = "BSS Color disabled"
	} else {
		d.Summary = fmt.Sprintf("BSS Color %d", color)
	}
	d.Details = []string{
		fmt.Sprintf("BSS Color: %d", color),
		fmt.Sprintf("BSS Color Disabled: %t", disabled),
	}
	return d
}

func decodeSpatialReuse(body []byte) decoded {
	d := decoded{Name: "Spatial Reuse Parameter Set"}
	if len(body) < 1 {
		d.Summary = "Raw: " + hexDump(body)
		return d
	}

	var flags []string
	if body[0]&0x01 != 0 {
		flags = append(flags, "PSR Disallowed")
	}
	if body[0]&0x02 != 0 {
		flags = append(flags, "Non-SRG OBSS PD SR Disallowed")
	}
	if len(flags) == 0 {
		d.Summary = "No restrictions"
	} else {
		d.Summary = strings.Join(flags, ", ")
		d.Details = flags
	}
	return d
}
