package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
	"github.com/lcalzada-xor/wsurvey/internal/radio"
)

// PcapProvider replays beacon and probe-response frames from a capture
// file, reassembling each network's IE byte stream. Every Scan call re-reads
// the file, so a survey loop over a static capture is stable.
type PcapProvider struct {
	path string
}

// NewPcapProvider validates that the capture file exists and is readable.
func NewPcapProvider(path string) (*PcapProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	if _, err := pcapgo.NewReader(f); err != nil {
		return nil, fmt.Errorf("read capture header: %w", err)
	}
	return &PcapProvider{path: path}, nil
}

func (p *PcapProvider) Interface() string { return "pcap:" + p.path }
func (p *PcapProvider) Close() error      { return nil }

// Scan walks the whole capture and returns one entry per BSSID, keeping the
// observation with the strongest signal.
func (p *PcapProvider) Scan(ctx context.Context) ([]ports.BSSInfo, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read capture header: %w", err)
	}

	var firstLayer gopacket.LayerType
	switch reader.LinkType() {
	case layers.LinkTypeIEEE80211Radio:
		firstLayer = layers.LayerTypeRadioTap
	case layers.LinkTypeIEEE802_11:
		firstLayer = layers.LayerTypeDot11
	default:
		return nil, fmt.Errorf("unsupported link type %v", reader.LinkType())
	}

	best := make(map[string]ports.BSSInfo)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, _, err := reader.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			break // clipped trailing packet, keep what we have
		}

		packet := gopacket.NewPacket(data, firstLayer, gopacket.Default)
		info, ok := p.extractBSS(packet)
		if !ok {
			continue
		}

		if prev, seen := best[info.BSSID]; !seen || info.RSSI > prev.RSSI {
			best[info.BSSID] = info
		}
	}

	results := make([]ports.BSSInfo, 0, len(best))
	for _, info := range best {
		results = append(results, info)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].BSSID < results[j].BSSID })
	return results, nil
}

// extractBSS pulls the identity fields and raw IE bytes out of one
// management frame. Only beacons and probe responses describe a BSS.
func (p *PcapProvider) extractBSS(packet gopacket.Packet) (ports.BSSInfo, bool) {
	dot11Layer := packet.Layer(layers.LayerTypeDot11)
	if dot11Layer == nil {
		return ports.BSSInfo{}, false
	}
	dot11, ok := dot11Layer.(*layers.Dot11)
	if !ok {
		return ports.BSSInfo{}, false
	}

	var ieData []byte
	switch dot11.Type {
	case layers.Dot11TypeMgmtBeacon:
		if beacon := packet.Layer(layers.LayerTypeDot11MgmtBeacon); beacon != nil {
			ieData = beacon.LayerPayload()
		}
	case layers.Dot11TypeMgmtProbeResp:
		if resp := packet.Layer(layers.LayerTypeDot11MgmtProbeResp); resp != nil {
			ieData = resp.LayerPayload()
		}
	default:
		return ports.BSSInfo{}, false
	}

	// Fallback: gopacket sometimes decodes the IEs into individual layers
	// instead of leaving them in the management payload.
	if len(ieData) == 0 {
		for _, layer := range packet.Layers() {
			if layer.LayerType() == layers.LayerTypeDot11InformationElement {
				if elem, ok := layer.(*layers.Dot11InformationElement); ok {
					ieData = append(ieData, byte(elem.ID), elem.Length)
					ieData = append(ieData, elem.Info...)
				}
			}
		}
	}

	info := ports.BSSInfo{
		BSSID:   dot11.Address3.String(),
		RSSI:    -100,
		IEBytes: ieData,
	}

	if radiotapLayer := packet.Layer(layers.LayerTypeRadioTap); radiotapLayer != nil {
		if radiotap, ok := radiotapLayer.(*layers.RadioTap); ok {
			info.RSSI = int(radiotap.DBMAntennaSignal)
			info.Frequency = int(radiotap.ChannelFrequency)
			info.Channel = radio.FrequencyToChannel(info.Frequency)
			info.Band = radio.BandForFrequency(info.Frequency)
		}
	}

	return info, true
}
