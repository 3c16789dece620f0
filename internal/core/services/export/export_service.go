package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// ExportJSON writes a snapshot as indented JSON.
func ExportJSON(w io.Writer, snap domain.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// ExportCSV writes one row per network with headers.
func ExportCSV(w io.Writer, snap domain.Snapshot) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"BSSID", "SSID", "Vendor", "RSSI",
		"Channel", "Frequency", "Band", "ChannelWidth",
		"Standard", "BasicRates", "MinRate", "MaxRate",
		"Utilization", "Stations", "FastTransition", "SpatialStreams",
		"Security", "WPS", "Elements", "LastSeen",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, n := range snap.Networks {
		row := []string{
			n.BSSID,
			n.SSID,
			n.Vendor,
			fmt.Sprintf("%d", n.RSSI),
			fmt.Sprintf("%d", n.Channel),
			fmt.Sprintf("%d", n.Frequency),
			n.Band.String(),
			fmt.Sprintf("%d", n.ChannelWidth),
			n.Standard,
			formatRates(n.BasicRates),
			formatRate(n.MinRate),
			formatRate(n.MaxRate),
			formatIntPtr(n.Derived.ChannelUtilization),
			formatIntPtr(n.Derived.StationCount),
			formatBoolPtr(n.Derived.FastTransition),
			formatIntPtr(n.Derived.SpatialStreams),
			securityLabel(n.Derived.Security),
			wpsLabel(n.Derived.WPS),
			fmt.Sprintf("%d", len(n.Elements)),
			n.LastSeen.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

func formatRate(r float64) string {
	if r == 0 {
		return ""
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatRates(rates []float64) string {
	parts := make([]string, 0, len(rates))
	for _, r := range rates {
		parts = append(parts, strconv.FormatFloat(r, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatBoolPtr(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// securityLabel condenses the RSN details into one cell, AKMs first.
func securityLabel(rsn *domain.RSNInfo) string {
	if rsn == nil {
		return "Open"
	}
	akm := strings.Join(rsn.AKMSuites, "/")
	if akm == "" {
		return rsn.GroupCipher
	}
	if len(rsn.PairwiseCiphers) == 0 {
		return akm
	}
	return akm + " (" + strings.Join(rsn.PairwiseCiphers, "/") + ")"
}

func wpsLabel(wps *domain.WPSInfo) string {
	if wps == nil {
		return ""
	}
	if wps.Configured {
		return "Configured"
	}
	return "Unconfigured"
}
