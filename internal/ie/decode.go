package ie

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// Result is the output of decoding one IE byte stream: the ordered element
// list plus the metrics folded out of it. Decode is a pure function; the
// result holds no references into shared state.
type Result struct {
	Elements []domain.InformationElement
	Derived  domain.DerivedMetrics
	// Standard is the capability-based PHY generation (HT/VHT/HE elements
	// seen in the stream), GenUnknown when none were present.
	Standard domain.Generation
}

// rateEntry is one rate from a Supported Rates or Extended Supported Rates
// record. All such records in a buffer are coalesced into a single element.
type rateEntry struct {
	Mbps  float64
	Basic bool
}

// Decode walks the raw IE buffer and dispatches each record to its decoder.
// Truncated trailing records are dropped by the scanner; a malformed
// interior of a single element degrades to a raw-hex display of that
// element. Decode never fails.
func Decode(data []byte, vendors VendorLookup) Result {
	var res Result

	var rates []rateEntry
	var rateBytes []byte
	ratesAt := -1 // insertion index of the coalesced rates element

	var htSeen, vhtSeen, heSeen bool
	maxStreams := 0
	seq := 0

	Walk(data, func(id uint8, payload []byte) {
		if id == TagSupportedRates || id == TagExtendedRates {
			if ratesAt < 0 {
				ratesAt = len(res.Elements)
			}
			for _, b := range payload {
				rates = append(rates, rateEntry{
					Mbps:  float64(b&0x7F) * 0.5,
					Basic: b&0x80 != 0,
				})
			}
			rateBytes = append(rateBytes, payload...)
			return
		}

		var d decoded
		switch id {
		case TagSSID:
			d = decodeSSID(payload)
		case TagDSParameterSet:
			d = decodeDSParameter(payload)
		case TagTIM:
			d = decodeTIM(payload)
		case TagCountry:
			d = decodeCountry(payload)
		case TagBSSLoad:
			var stations, utilization *int
			d, stations, utilization = decodeBSSLoad(payload)
			if res.Derived.StationCount == nil {
				res.Derived.StationCount = stations
			}
			if res.Derived.ChannelUtilization == nil {
				res.Derived.ChannelUtilization = utilization
			}
		case TagPowerConstraint:
			d = decodePowerConstraint(payload)
		case TagTPCReport:
			d = decodeTPCReport(payload)
		case TagHTCapabilities:
			var streams int
			d, streams = decodeHTCapabilities(payload)
			htSeen = true
			maxStreams = max(maxStreams, streams)
		case TagRSN:
			var info *domain.RSNInfo
			var ft bool
			d, info, ft = decodeRSN(payload)
			if res.Derived.Security == nil {
				res.Derived.Security = info
			}
			if ft {
				t := true
				res.Derived.FastTransition = &t
			} else if res.Derived.FastTransition == nil && info != nil {
				f := false
				res.Derived.FastTransition = &f
			}
		case TagMobilityDomain:
			d = decodeMobilityDomain(payload)
			t := true
			res.Derived.FastTransition = &t
		case TagHTOperation:
			var protection string
			d, protection = decodeHTOperation(payload)
			if res.Derived.ProtectionMode == "" {
				res.Derived.ProtectionMode = protection
			}
		case TagRMCapabilities:
			d = decodeRMCapabilities(payload)
		case TagExtCapabilities:
			d = decodeExtCapabilities(payload)
		case TagVHTCapabilities:
			var streams int
			d, streams = decodeVHTCapabilities(payload)
			vhtSeen = true
			maxStreams = max(maxStreams, streams)
		case TagVHTOperation:
			d = decodeVHTOperation(payload)
		case TagVendorSpecific:
			var wps *domain.WPSInfo
			d, wps = decodeVendorSpecific(payload, vendors)
			if wps != nil && res.Derived.WPS == nil {
				res.Derived.WPS = wps
			}
		case TagElementExtension:
			var streams int
			d, streams = decodeExtension(payload)
			if len(payload) > 0 && payload[0] == ExtHECapabilities {
				heSeen = true
			}
			maxStreams = max(maxStreams, streams)
		default:
			d = decodeGeneric(id, payload)
		}

		res.Elements = append(res.Elements, domain.InformationElement{
			ID:          fmt.Sprintf("%d-%d", id, seq),
			ElementID:   id,
			Length:      uint8(len(payload)),
			Name:        d.Name,
			Summary:     d.Summary,
			DetailLines: d.Details,
			RawHex:      hexDump(payload),
		})
		seq++
	})

	if ratesAt >= 0 {
		elem := ratesElement(rates, rateBytes)
		res.Elements = append(res.Elements, domain.InformationElement{})
		copy(res.Elements[ratesAt+1:], res.Elements[ratesAt:])
		res.Elements[ratesAt] = elem
	}

	if maxStreams > 0 {
		res.Derived.SpatialStreams = &maxStreams
	}

	switch {
	case heSeen:
		res.Standard = domain.Gen11AX
	case vhtSeen:
		res.Standard = domain.Gen11AC
	case htSeen:
		res.Standard = domain.Gen11N
	}

	return res
}

// ratesElement synthesizes the single coalesced Supported Rates element.
// It always carries the fixed identifier "1-0".
func ratesElement(rates []rateEntry, raw []byte) domain.InformationElement {
	parts := make([]string, 0, len(rates))
	for _, r := range rates {
		s := strconv.FormatFloat(r.Mbps, 'f', -1, 64)
		if r.Basic {
			s += "(B)"
		}
		parts = append(parts, s)
	}

	summary := strings.Join(parts, " ")
	if summary != "" {
		summary += " Mbps"
	}

	length := len(raw)
	if length > 255 {
		length = 255
	}

	return domain.InformationElement{
		ID:        "1-0",
		ElementID: TagSupportedRates,
		Length:    uint8(length),
		Name:      elementName(TagSupportedRates),
		Summary:   summary,
		RawHex:    hexDump(raw),
	}
}

// BasicRates extracts the rates flagged as basic (mandatory) from a decode,
// for callers that need them as numbers rather than display text.
func BasicRates(data []byte) []float64 {
	var basics []float64
	Walk(data, func(id uint8, payload []byte) {
		if id != TagSupportedRates && id != TagExtendedRates {
			return
		}
		for _, b := range payload {
			if b&0x80 != 0 {
				basics = append(basics, float64(b&0x7F)*0.5)
			}
		}
	})
	return basics
}
