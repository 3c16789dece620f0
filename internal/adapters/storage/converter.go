package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// toModel converts a domain snapshot to its GORM representation. Slices and
// the derived-metrics block are JSON encoded rather than spread over columns.
func toModel(snap domain.Snapshot) SnapshotModel {
	model := SnapshotModel{
		CycleID:   snap.CycleID,
		Taken:     snap.Taken,
		Interface: snap.Interface,
		Networks:  make([]NetworkModel, 0, len(snap.Networks)),
	}

	for _, n := range snap.Networks {
		nm := NetworkModel{
			CycleID:      snap.CycleID,
			BSSID:        n.BSSID,
			SSID:         n.SSID,
			Vendor:       n.Vendor,
			RSSI:         n.RSSI,
			Channel:      n.Channel,
			Frequency:    n.Frequency,
			Band:         int(n.Band),
			ChannelWidth: n.ChannelWidth,
			Standard:     n.Standard,
			MinRate:      n.MinRate,
			MaxRate:      n.MaxRate,
			LastSeen:     n.LastSeen,
			BasicRates:   marshalField(n.BasicRates),
			Derived:      marshalField(n.Derived),
			Elements:     make([]ElementModel, 0, len(n.Elements)),
		}

		for _, elem := range n.Elements {
			nm.Elements = append(nm.Elements, ElementModel{
				Ident:     elem.ID,
				ElementID: int(elem.ElementID),
				Length:    int(elem.Length),
				Name:      elem.Name,
				Summary:   elem.Summary,
				Details:   marshalField(elem.DetailLines),
				RawHex:    elem.RawHex,
			})
		}
		model.Networks = append(model.Networks, nm)
	}

	return model
}

// toDomain converts a stored snapshot back to the domain form.
func toDomain(model SnapshotModel) domain.Snapshot {
	snap := domain.Snapshot{
		CycleID:   model.CycleID,
		Taken:     model.Taken,
		Interface: model.Interface,
		Networks:  make([]domain.Network, 0, len(model.Networks)),
	}

	for _, nm := range model.Networks {
		n := domain.Network{
			BSSID:        nm.BSSID,
			SSID:         nm.SSID,
			Vendor:       nm.Vendor,
			RSSI:         nm.RSSI,
			Channel:      nm.Channel,
			Frequency:    nm.Frequency,
			Band:         domain.Band(nm.Band),
			ChannelWidth: nm.ChannelWidth,
			Standard:     nm.Standard,
			MinRate:      nm.MinRate,
			MaxRate:      nm.MaxRate,
			CycleID:      nm.CycleID,
			LastSeen:     nm.LastSeen,
		}
		unmarshalField(nm.BasicRates, &n.BasicRates)
		unmarshalField(nm.Derived, &n.Derived)

		for _, em := range nm.Elements {
			elem := domain.InformationElement{
				ID:        em.Ident,
				ElementID: uint8(em.ElementID),
				Length:    uint8(em.Length),
				Name:      em.Name,
				Summary:   em.Summary,
				RawHex:    em.RawHex,
			}
			unmarshalField(em.Details, &elem.DetailLines)
			n.Elements = append(n.Elements, elem)
		}
		snap.Networks = append(snap.Networks, n)
	}

	return snap
}

func marshalField(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Failed to encode storage field", "error", err)
		return ""
	}
	return string(b)
}

func unmarshalField(s string, dst any) {
	if s == "" {
		return
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		slog.Warn("Failed to decode storage field", "error", err)
	}
}
