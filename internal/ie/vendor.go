package ie

import (
	"fmt"
	"strings"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// VendorLookup resolves a 3-byte OUI to a vendor name. A miss returns "".
type VendorLookup interface {
	VendorName(oui []byte) string
}

// Microsoft's OUI prefixes both WMM and WPS vendor elements.
var ouiMicrosoft = []byte{0x00, 0x50, 0xF2}

const (
	vendorTypeWMM = 2
	vendorTypeWPS = 4
)

// decodeVendorSpecific parses element 221. WMM and WPS payloads under the
// Microsoft OUI get dedicated decoders; everything else is labeled through
// the vendor lookup.
func decodeVendorSpecific(data []byte, vendors VendorLookup) (decoded, *domain.WPSInfo) {
	d := decoded{Name: elementName(TagVendorSpecific)}
	if len(data) < 3 {
		d.Summary = "Raw: " + hexDump(data)
		return d, nil
	}

	oui := data[0:3]
	if len(data) >= 4 && oui[0] == ouiMicrosoft[0] && oui[1] == ouiMicrosoft[1] && oui[2] == ouiMicrosoft[2] {
		switch data[3] {
		case vendorTypeWMM:
			d.Name = "Wireless Multimedia"
			d.Summary = "WMM/WME"
			return d, nil
		case vendorTypeWPS:
			return decodeWPS(data[4:])
		}
	}

	d.Summary = vendorLabel(oui, vendors)
	d.Details = []string{fmt.Sprintf("OUI: %02x:%02x:%02x", oui[0], oui[1], oui[2])}
	return d, nil
}

// vendorLabel resolves a display string for a vendor OUI. A few very common
// vendors get short fixed labels; otherwise the lookup result is used as-is.
func vendorLabel(oui []byte, vendors VendorLookup) string {
	name := ""
	if vendors != nil {
		name = vendors.VendorName(oui)
	}
	if name == "" {
		return "Vendor Specific"
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "qualcomm"):
		return "Qualcomm"
	case strings.Contains(lower, "microsoft"):
		return "Microsoft"
	case strings.Contains(lower, "tp-link"):
		return "TP-Link"
	}
	return name
}
