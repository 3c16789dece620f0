package ie

// Common IE tags
const (
	TagSSID             = 0
	TagSupportedRates   = 1
	TagDSParameterSet   = 3
	TagTIM              = 5
	TagCountry          = 7
	TagBSSLoad          = 11
	TagPowerConstraint  = 32
	TagTPCReport        = 35
	TagHTCapabilities   = 45
	TagRSN              = 48
	TagExtendedRates    = 50
	TagMobilityDomain   = 54
	TagHTOperation      = 61
	TagRMCapabilities   = 70
	TagExtCapabilities  = 127
	TagVHTCapabilities  = 191
	TagVHTOperation     = 192
	TagVendorSpecific   = 221 // 0xDD
	TagElementExtension = 255
)

// Extension IDs carried in the first payload byte of tag 255.
const (
	ExtHECapabilities = 35
	ExtHEOperation    = 36
	ExtSpatialReuse   = 55
	ExtMUEDCA         = 12
)

// Walk calls the provided callback for each complete IE found in the data.
// Records use a 1-byte tag and 1-byte length. It stops at the first record
// whose header or declared payload runs past the end of the buffer, so a
// clipped capture degrades to fewer elements instead of an error.
func Walk(data []byte, callback func(id uint8, payload []byte)) {
	offset := 0
	limit := len(data)

	for offset < limit {
		// Needs at least 2 bytes (ID and Length)
		if offset+2 > limit {
			break
		}

		id := data[offset]
		length := int(data[offset+1])
		offset += 2

		// Check bounds
		if offset+length > limit {
			break
		}

		callback(id, data[offset:offset+length])
		offset += length
	}
}

// walkWide is the same cursor with 2-byte big-endian type and length fields,
// as used by the WPS attribute stream nested inside a vendor IE.
func walkWide(data []byte, callback func(attr uint16, payload []byte)) {
	offset := 0
	limit := len(data)

	for offset < limit {
		if offset+4 > limit {
			break
		}

		attr := uint16(data[offset])<<8 | uint16(data[offset+1])
		length := int(data[offset+2])<<8 | int(data[offset+3])
		offset += 4

		if offset+length > limit {
			break
		}

		callback(attr, data[offset:offset+length])
		offset += length
	}
}
