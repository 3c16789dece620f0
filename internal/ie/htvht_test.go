package ie

import (
	"strings"
	"testing"
)

func TestDecodeHTCapabilities(t *testing.T) {
	payload := make([]byte, 26)
	payload[0] = 0x62 // 40 MHz + SGI-20 + SGI-40
	payload[3] = 0xFF // MCS 0-7
	payload[4] = 0xFF // MCS 8-15

	d, streams := decodeHTCapabilities(payload)
	if streams != 2 {
		t.Errorf("streams = %d, want 2", streams)
	}
	for _, want := range []string{"40 MHz", "Short GI 20 MHz", "Short GI 40 MHz", "2 spatial streams"} {
		if !strings.Contains(d.Summary, want) {
			t.Errorf("summary %q missing %q", d.Summary, want)
		}
	}
}

func TestDecodeHTCapabilities_20MHzOnly(t *testing.T) {
	payload := make([]byte, 26)
	payload[3] = 0xFF

	d, streams := decodeHTCapabilities(payload)
	if streams != 1 {
		t.Errorf("streams = %d, want 1", streams)
	}
	if !strings.Contains(d.Summary, "20 MHz") {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestDecodeHTOperation(t *testing.T) {
	tests := []struct {
		payload    []byte
		secondary  string
		protection string
	}{
		{[]byte{6, 0x01, 0x00}, "+1", "None"},
		{[]byte{11, 0x03, 0x01}, "-1", "Non-member"},
		{[]byte{1, 0x00, 0x02}, "0", "20 MHz"},
		{[]byte{36, 0x00, 0x03}, "0", "Non-HT mixed"},
	}

	for _, tt := range tests {
		d, protection := decodeHTOperation(tt.payload)
		if protection != tt.protection {
			t.Errorf("payload %v: protection = %q, want %q", tt.payload, protection, tt.protection)
		}
		if !strings.Contains(d.Summary, "offset "+tt.secondary) {
			t.Errorf("payload %v: summary = %q, want offset %s", tt.payload, d.Summary, tt.secondary)
		}
	}
}

func TestMCSMapStreams(t *testing.T) {
	tests := []struct {
		mcsMap  uint16
		streams int
	}{
		{0xFFFF, 0}, // all slots "not supported"
		{0xFFFE, 1},
		{0xFFFA, 2},
		{0x0000, 8},
	}

	for _, tt := range tests {
		if got := mcsMapStreams(tt.mcsMap); got != tt.streams {
			t.Errorf("mcsMapStreams(%#04x) = %d, want %d", tt.mcsMap, got, tt.streams)
		}
	}
}

func TestDecodeVHTCapabilities(t *testing.T) {
	payload := make([]byte, 12)
	payload[0] = 0x60 // SGI 80 + SGI 160
	payload[4] = 0xFA // slots 0-1 supported
	payload[5] = 0xFF

	d, streams := decodeVHTCapabilities(payload)
	if streams != 2 {
		t.Errorf("streams = %d, want 2", streams)
	}
	for _, want := range []string{"Short GI 80 MHz", "Short GI 160 MHz"} {
		if !strings.Contains(d.Summary, want) {
			t.Errorf("summary %q missing %q", d.Summary, want)
		}
	}
}

func TestDecodeVHTOperation(t *testing.T) {
	d := decodeVHTOperation([]byte{1, 42, 0})
	if d.Summary != "80 MHz" {
		t.Errorf("summary = %q, want 80 MHz", d.Summary)
	}

	d = decodeVHTOperation([]byte{2, 50, 114})
	if d.Summary != "160 MHz or 80+80 MHz" {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestDecodeMobilityDomain(t *testing.T) {
	d := decodeMobilityDomain([]byte{0x34, 0x12, 0x01})
	if !strings.Contains(d.Summary, "0x1234") {
		t.Errorf("summary = %q", d.Summary)
	}
	if !strings.Contains(strings.Join(d.Details, ";"), "FT over DS: true") {
		t.Errorf("details = %v", d.Details)
	}
}

func TestDecode_MobilityDomainSetsFastTransition(t *testing.T) {
	buf := buildIE(TagMobilityDomain, []byte{0x34, 0x12, 0x00})
	res := Decode(buf, nil)
	if res.Derived.FastTransition == nil || !*res.Derived.FastTransition {
		t.Error("mobility domain presence must flag fast transition")
	}
}
