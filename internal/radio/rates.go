// Package radio holds the pure rate and frequency arithmetic used to fill
// in values the scan provider does not supply. Everything here is a
// deterministic table or formula; there are no failure modes beyond a zero
// return for unknown inputs.
package radio

import "github.com/lcalzada-xor/wsurvey/internal/core/domain"

// maxRateTables maps channel width in MHz to the data rate in Mbps for the
// width-scaled generations. Widths with no entry fall back to the 20 MHz
// value.
var maxRateTables = map[domain.Generation]map[int]float64{
	domain.Gen11N:  {20: 72, 40: 150, 80: 300, 160: 300},
	domain.Gen11AC: {20: 87, 40: 200, 80: 433, 160: 867},
	domain.Gen11AX: {20: 143, 40: 286, 80: 600, 160: 1200},
}

// MaxRateEstimate returns a best-effort maximum data rate in Mbps for a PHY
// generation at a channel width. Unknown generations return 0.
func MaxRateEstimate(gen domain.Generation, widthMHz int) float64 {
	switch gen {
	case domain.Gen11B:
		return 11
	case domain.Gen11A, domain.Gen11G:
		return 54
	}

	table, ok := maxRateTables[gen]
	if !ok {
		return 0
	}
	if rate, ok := table[widthMHz]; ok {
		return rate
	}
	return table[20]
}

// BasicRates returns the mandatory rate set in Mbps for a PHY generation.
func BasicRates(gen domain.Generation) []float64 {
	switch gen {
	case domain.Gen11B:
		return []float64{1, 2, 5.5, 11}
	case domain.Gen11A, domain.Gen11G:
		return []float64{6, 9, 12, 18, 24, 36, 48, 54}
	case domain.Gen11N, domain.Gen11AC, domain.Gen11AX:
		return []float64{6, 12, 24, 54}
	}
	return nil
}

// FallbackMinRate is the crude 10%-of-max heuristic carried over for when
// the provider supplies no minimum rate. It has no IEEE basis and must only
// be used as a clearly labeled fallback.
func FallbackMinRate(maxRate float64) float64 {
	return maxRate * 0.1
}

// CenterFrequency converts a channel number to its center frequency in MHz.
// Returns 0 for an unknown band.
func CenterFrequency(channel int, band domain.Band) int {
	switch band {
	case domain.Band24GHz:
		if channel == 14 {
			return 2484
		}
		return 2407 + 5*channel
	case domain.Band5GHz:
		return 5000 + 5*channel
	case domain.Band6GHz:
		return 5950 + 5*channel
	}
	return 0
}

// FrequencyToChannel is the inverse mapping, for providers that report only
// a frequency. Returns 0 for unrecognized frequencies.
func FrequencyToChannel(freqMHz int) int {
	switch {
	case freqMHz >= 2412 && freqMHz <= 2484:
		if freqMHz == 2484 {
			return 14
		}
		return (freqMHz - 2407) / 5
	case freqMHz >= 5170 && freqMHz <= 5825:
		return (freqMHz - 5000) / 5
	case freqMHz >= 5955 && freqMHz <= 7115:
		return (freqMHz - 5950) / 5
	}
	return 0
}

// BandForFrequency classifies a center frequency in MHz.
func BandForFrequency(freqMHz int) domain.Band {
	switch {
	case freqMHz >= 2400 && freqMHz <= 2500:
		return domain.Band24GHz
	case freqMHz >= 5000 && freqMHz < 5925:
		return domain.Band5GHz
	case freqMHz >= 5925 && freqMHz <= 7125:
		return domain.Band6GHz
	}
	return domain.BandUnknown
}

// beaconFrameBytes is the assumed size of a beacon frame for airtime math.
const beaconFrameBytes = 300

// EstimateBeaconAirtime returns the airtime of one beacon in milliseconds
// and the total beacon airtime per second, assuming a fixed 300-byte frame.
// Returns (0, 0) when either input is missing or non-positive.
func EstimateBeaconAirtime(beaconIntervalMs float64, beaconRateMbps float64) (perBeaconMs, perSecondMs float64) {
	if beaconIntervalMs <= 0 || beaconRateMbps <= 0 {
		return 0, 0
	}
	perBeaconMs = float64(beaconFrameBytes*8) / (beaconRateMbps * 1e6) * 1000
	perSecondMs = perBeaconMs * (1000 / beaconIntervalMs)
	return perBeaconMs, perSecondMs
}
