package ie

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// WPS attribute types (2-byte big-endian, per the WSC spec).
const (
	wpsAttrConfigMethods     = 0x1008
	wpsAttrDeviceName        = 0x1011
	wpsAttrManufacturer      = 0x1021
	wpsAttrModelName         = 0x1023
	wpsAttrModelNumber       = 0x1024
	wpsAttrSerialNumber      = 0x1042
	wpsAttrState             = 0x1044
	wpsAttrPrimaryDeviceType = 0x1054
)

const wpsStateConfigured = 0x02

var wpsConfigMethodNames = []struct {
	mask uint16
	name string
}{
	{0x0001, "USB"},
	{0x0002, "Ethernet"},
	{0x0004, "Label"},
	{0x0008, "Display"},
	{0x0010, "External NFC Token"},
	{0x0020, "Integrated NFC Token"},
	{0x0040, "NFC Interface"},
	{0x0080, "PushButton"},
	{0x0100, "Keypad"},
}

var wpsDeviceCategories = map[uint16]string{
	1:  "Computer",
	2:  "Input Device",
	3:  "Printer/Scanner",
	4:  "Camera",
	5:  "Storage",
	6:  "Network Infrastructure",
	7:  "Display",
	8:  "Multimedia Device",
	9:  "Gaming Device",
	10: "Telephone",
	11: "Audio Device",
}

const (
	wpsCategoryNetwork = 6
	wpsSubcategoryAP   = 1
)

// decodeWPS parses the attribute block of a WPS vendor element (the bytes
// after the OUI+type prefix). The block is itself a TLV stream with 2-byte
// big-endian type and length fields; unknown attributes are skipped and a
// truncated trailing attribute simply ends the walk.
func decodeWPS(data []byte) (decoded, *domain.WPSInfo) {
	d := decoded{Name: "WPS"}
	info := &domain.WPSInfo{}

	walkWide(data, func(attr uint16, payload []byte) {
		switch attr {
		case wpsAttrState:
			info.Configured = len(payload) > 0 && payload[0] == wpsStateConfigured
		case wpsAttrDeviceName:
			info.DeviceName = safeString(payload)
		case wpsAttrManufacturer:
			info.Manufacturer = safeString(payload)
		case wpsAttrModelName:
			info.ModelName = safeString(payload)
		case wpsAttrModelNumber:
			info.ModelNumber = safeString(payload)
		case wpsAttrSerialNumber:
			info.SerialNumber = safeString(payload)
		case wpsAttrConfigMethods:
			if len(payload) >= 2 {
				methods := uint16(payload[0])<<8 | uint16(payload[1])
				info.SupportedMethods = configMethodNames(methods)
			}
		case wpsAttrPrimaryDeviceType:
			if len(payload) >= 8 {
				category := uint16(payload[0])<<8 | uint16(payload[1])
				subcategory := uint16(payload[6])<<8 | uint16(payload[7])
				info.PrimaryDeviceType = deviceTypeName(category, subcategory)
				info.IsAccessPoint = category == wpsCategoryNetwork && subcategory == wpsSubcategoryAP
			}
		}
	})

	d.Summary = wpsSummary(info)
	d.Details = wpsDetails(info)
	return d, info
}

func configMethodNames(mask uint16) []string {
	var names []string
	for _, m := range wpsConfigMethodNames {
		if mask&m.mask != 0 {
			names = append(names, m.name)
		}
	}
	return names
}

func deviceTypeName(category, subcategory uint16) string {
	name, ok := wpsDeviceCategories[category]
	if !ok {
		name = fmt.Sprintf("Category %d", category)
	}
	if category == wpsCategoryNetwork && subcategory == wpsSubcategoryAP {
		return name + " (Access Point)"
	}
	return name
}

func wpsSummary(info *domain.WPSInfo) string {
	state := "Unconfigured"
	if info.Configured {
		state = "Configured"
	}

	var parts []string
	parts = append(parts, state)
	if info.Manufacturer != "" {
		parts = append(parts, info.Manufacturer)
	}
	if info.ModelName != "" {
		parts = append(parts, info.ModelName)
	} else if info.DeviceName != "" {
		parts = append(parts, info.DeviceName)
	}
	return strings.Join(parts, ", ")
}

func wpsDetails(info *domain.WPSInfo) []string {
	var details []string
	add := func(label, value string) {
		if value != "" {
			details = append(details, label+": "+value)
		}
	}
	add("Manufacturer", info.Manufacturer)
	add("Model Name", info.ModelName)
	add("Model Number", info.ModelNumber)
	add("Serial Number", info.SerialNumber)
	add("Device Name", info.DeviceName)
	add("Primary Device Type", info.PrimaryDeviceType)
	if len(info.SupportedMethods) > 0 {
		details = append(details, "Config Methods: "+strings.Join(info.SupportedMethods, ", "))
	}
	return details
}

// safeString converts attribute bytes to a display string, rejecting
// payloads that are not valid UTF-8.
func safeString(data []byte) string {
	if !utf8.Valid(data) {
		return ""
	}
	return strings.TrimRight(string(data), "\x00")
}
