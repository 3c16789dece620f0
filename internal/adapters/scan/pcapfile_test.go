package scan

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/lcalzada-xor/wsurvey/internal/ie"
)

// buildBeacon assembles a raw 802.11 beacon frame: 24-byte MGMT header,
// 12 bytes of fixed parameters, the IE records and a dummy FCS.
func buildBeacon(bssid net.HardwareAddr, ies []byte) []byte {
	frame := make([]byte, 24)
	frame[0] = 0x80 // MGMT / Beacon
	copy(frame[4:], net.HardwareAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	copy(frame[10:], bssid)
	copy(frame[16:], bssid)

	fixed := make([]byte, 12)
	fixed[8] = 0x64 // beacon interval 100 TU
	fixed[10] = 0x01
	frame = append(frame, fixed...)

	frame = append(frame, ies...)
	frame = append(frame, 0xDE, 0xAD, 0xBE, 0xEF)
	return frame
}

func ieRecord(id uint8, payload []byte) []byte {
	return append([]byte{id, uint8(len(payload))}, payload...)
}

func writeCapture(t *testing.T, frames [][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scan.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create capture: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeIEEE802_11); err != nil {
		t.Fatalf("write file header: %v", err)
	}
	for _, frame := range frames {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Now(),
			CaptureLength: len(frame),
			Length:        len(frame),
		}
		if err := w.WritePacket(ci, frame); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	return path
}

func TestPcapProviderScan(t *testing.T) {
	bssid := net.HardwareAddr{0xAA, 0xBB, 0xCC, 0x00, 0x11, 0x22}
	ies := ieRecord(0, []byte("lab-net"))
	ies = append(ies, ieRecord(1, []byte{0x82, 0x84, 0x8B, 0x96})...)
	ies = append(ies, ieRecord(3, []byte{6})...)

	path := writeCapture(t, [][]byte{buildBeacon(bssid, ies)})

	provider, err := NewPcapProvider(path)
	if err != nil {
		t.Fatalf("NewPcapProvider: %v", err)
	}
	defer provider.Close()

	results, err := provider.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 network, got %d", len(results))
	}

	bss := results[0]
	if bss.BSSID != "aa:bb:cc:00:11:22" {
		t.Errorf("BSSID = %q", bss.BSSID)
	}
	if len(bss.IEBytes) == 0 {
		t.Fatal("no IE bytes reassembled from the frame")
	}

	res := ie.Decode(bss.IEBytes, nil)
	var ssid string
	for _, elem := range res.Elements {
		if elem.ElementID == ie.TagSSID {
			ssid = elem.Summary
		}
	}
	if ssid != "lab-net" {
		t.Errorf("decoded SSID = %q, want %q", ssid, "lab-net")
	}
}

func TestPcapProviderScan_DedupesByBSSID(t *testing.T) {
	bssidA := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	bssidB := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02}

	frames := [][]byte{
		buildBeacon(bssidA, ieRecord(0, []byte("net-a"))),
		buildBeacon(bssidA, ieRecord(0, []byte("net-a"))),
		buildBeacon(bssidB, ieRecord(0, []byte("net-b"))),
	}
	path := writeCapture(t, frames)

	provider, err := NewPcapProvider(path)
	if err != nil {
		t.Fatalf("NewPcapProvider: %v", err)
	}
	defer provider.Close()

	results, err := provider.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 networks after dedupe, got %d", len(results))
	}
	if results[0].BSSID != "02:00:00:00:00:01" || results[1].BSSID != "02:00:00:00:00:02" {
		t.Errorf("results not sorted by BSSID: %q, %q", results[0].BSSID, results[1].BSSID)
	}
}

func TestNewPcapProvider_MissingFile(t *testing.T) {
	if _, err := NewPcapProvider(filepath.Join(t.TempDir(), "nope.pcap")); err == nil {
		t.Fatal("expected error for missing capture file")
	}
}
