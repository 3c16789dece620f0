package ie

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// ouiIEEE80211 is the standard suite-selector OUI (00:0F:AC). Suites under
// any other OUI resolve to "Vendor".
var ouiIEEE80211 = []byte{0x00, 0x0F, 0xAC}

// AKM suite types that imply 802.11r fast transition.
const (
	akmFT8021X = 3
	akmFTPSK   = 4
	akmFTSAE   = 9
)

// decodeRSN parses element 48. It returns the display element, the parsed
// security summary, and whether any AKM suite is an FT variant. Every read
// is bounds-checked; a declared count running past the payload aborts the
// element but never the surrounding scan.
func decodeRSN(data []byte) (decoded, *domain.RSNInfo, bool) {
	d := decoded{Name: elementName(TagRSN)}
	if len(data) < 2 {
		d.Summary = "Raw: " + hexDump(data)
		return d, nil, false
	}

	info := &domain.RSNInfo{}
	fastTransition := false
	offset := 0

	info.Version = uint16(data[offset]) | uint16(data[offset+1])<<8
	offset += 2

	// Group Cipher Suite (4 bytes: OUI + Type)
	if offset+4 <= len(data) {
		info.GroupCipher = cipherSuiteName(data[offset : offset+4])
		offset += 4
	}

	// Pairwise Cipher Suite Count + List
	if offset+2 <= len(data) {
		count := int(data[offset]) | int(data[offset+1])<<8
		offset += 2
		for i := 0; i < count && offset+4 <= len(data); i++ {
			info.PairwiseCiphers = append(info.PairwiseCiphers, cipherSuiteName(data[offset:offset+4]))
			offset += 4
		}
	}

	// AKM Suite Count + List
	if offset+2 <= len(data) {
		count := int(data[offset]) | int(data[offset+1])<<8
		offset += 2
		for i := 0; i < count && offset+4 <= len(data); i++ {
			suite := data[offset : offset+4]
			info.AKMSuites = append(info.AKMSuites, akmSuiteName(suite))
			if bytes.Equal(suite[0:3], ouiIEEE80211) {
				switch suite[3] {
				case akmFT8021X, akmFTPSK, akmFTSAE:
					fastTransition = true
				}
			}
			offset += 4
		}
	}

	// RSN Capabilities (2 bytes)
	if offset+2 <= len(data) {
		caps := uint16(data[offset]) | uint16(data[offset+1])<<8
		info.Capabilities = rsnCapabilityNames(caps)
	}

	d.Summary = rsnSummary(info)
	d.Details = rsnDetails(info)
	return d, info, fastTransition
}

func rsnSummary(info *domain.RSNInfo) string {
	var parts []string
	if len(info.AKMSuites) > 0 {
		parts = append(parts, strings.Join(info.AKMSuites, "/"))
	}
	if len(info.PairwiseCiphers) > 0 {
		parts = append(parts, strings.Join(info.PairwiseCiphers, "/"))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Version %d", info.Version)
	}
	return strings.Join(parts, " ")
}

func rsnDetails(info *domain.RSNInfo) []string {
	details := []string{
		fmt.Sprintf("Version: %d", info.Version),
		"Group Cipher: " + info.GroupCipher,
	}
	if len(info.PairwiseCiphers) > 0 {
		details = append(details, "Pairwise Ciphers: "+strings.Join(info.PairwiseCiphers, ", "))
	}
	if len(info.AKMSuites) > 0 {
		details = append(details, "AKM Suites: "+strings.Join(info.AKMSuites, ", "))
	}
	if len(info.Capabilities) > 0 {
		details = append(details, "Capabilities: "+strings.Join(info.Capabilities, ", "))
	}
	return details
}

func cipherSuiteName(suite []byte) string {
	if len(suite) < 4 {
		return "Unknown"
	}
	if !bytes.Equal(suite[0:3], ouiIEEE80211) {
		return "Vendor"
	}
	switch suite[3] {
	case 0:
		return "Use Group Cipher"
	case 1:
		return "WEP-40"
	case 2:
		return "TKIP"
	case 4:
		return "CCMP"
	case 5:
		return "WEP-104"
	case 6:
		return "BIP-CMAC-128"
	case 8:
		return "GCMP-128"
	case 9:
		return "GCMP-256"
	case 10:
		return "CCMP-256"
	default:
		return fmt.Sprintf("Cipher %d", suite[3])
	}
}

func akmSuiteName(suite []byte) string {
	if len(suite) < 4 {
		return "Unknown"
	}
	if !bytes.Equal(suite[0:3], ouiIEEE80211) {
		return "Vendor"
	}
	switch suite[3] {
	case 1:
		return "802.1X"
	case 2:
		return "PSK"
	case 3:
		return "FT-802.1X"
	case 4:
		return "FT-PSK"
	case 5:
		return "802.1X-SHA256"
	case 6:
		return "PSK-SHA256"
	case 8:
		return "SAE"
	case 9:
		return "FT-SAE"
	case 11:
		return "802.1X-Suite-B"
	case 12:
		return "802.1X-Suite-B-192"
	case 18:
		return "OWE"
	default:
		return fmt.Sprintf("AKM %d", suite[3])
	}
}

func rsnCapabilityNames(caps uint16) []string {
	var names []string
	if caps&0x0001 != 0 {
		names = append(names, "PreAuth")
	}
	if caps&0x0002 != 0 {
		names = append(names, "No Pairwise")
	}
	names = append(names,
		fmt.Sprintf("PTKSA Replay Counters: %d", (caps>>2)&0x03),
		fmt.Sprintf("GTKSA Replay Counters: %d", (caps>>4)&0x03))
	if caps&0x0040 != 0 {
		names = append(names, "PMF Required")
	}
	if caps&0x0080 != 0 {
		names = append(names, "PMF Capable")
	}
	if caps&0x0200 != 0 {
		names = append(names, "PeerKey Enabled")
	}
	return names
}
