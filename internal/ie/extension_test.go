package ie

import (
	"strings"
	"testing"
)

func heCapsPayload(mcsLow, mcsHigh byte) []byte {
	payload := []byte{ExtHECapabilities}
	payload = append(payload, make([]byte, heMACLen+hePHYLen)...)
	return append(payload, mcsLow, mcsHigh)
}

func TestDecodeExtension_HECapabilities(t *testing.T) {
	d, streams := decodeExtension(heCapsPayload(0xFA, 0xFF)) // slots 0-1 supported
	if d.Name != "HE Capabilities" {
		t.Errorf("name = %q", d.Name)
	}
	if streams != 2 {
		t.Errorf("streams = %d, want 2", streams)
	}
}

func TestDecodeExtension_HECapabilitiesShort(t *testing.T) {
	d, streams := decodeExtension([]byte{ExtHECapabilities, 0x01, 0x02})
	if streams != 0 {
		t.Errorf("streams = %d, want 0 for short body", streams)
	}
	if !strings.HasPrefix(d.Summary, "Raw:") {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestDecodeExtension_HEOperation(t *testing.T) {
	d, _ := decodeExtension([]byte{ExtHEOperation, 0x2A})
	if d.Name != "HE Operation" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Summary != "BSS Color 42" {
		t.Errorf("summary = %q", d.Summary)
	}

	d, _ = decodeExtension([]byte{ExtHEOperation, 0x40})
	if d.Summary != "BSS Color disabled" {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestDecodeExtension_SpatialReuse(t *testing.T) {
	d, _ := decodeExtension([]byte{ExtSpatialReuse, 0x03})
	for _, want := range []string{"PSR Disallowed", "Non-SRG OBSS PD SR Disallowed"} {
		if !strings.Contains(d.Summary, want) {
			t.Errorf("summary %q missing %q", d.Summary, want)
		}
	}

	d, _ = decodeExtension([]byte{ExtSpatialReuse, 0x00})
	if d.Summary != "No restrictions" {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestDecodeExtension_MUEDCA(t *testing.T) {
	d, _ := decodeExtension([]byte{ExtMUEDCA, 0x00, 0x01})
	if d.Name != "MU EDCA Parameter Set" {
		t.Errorf("name = %q", d.Name)
	}
}

func TestDecodeExtension_Unknown(t *testing.T) {
	d, streams := decodeExtension([]byte{99, 0xDE, 0xAD})
	if d.Name != "Extension 99" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Summary != "Raw: de ad" {
		t.Errorf("summary = %q", d.Summary)
	}
	if streams != 0 {
		t.Errorf("streams = %d", streams)
	}
}

func TestDecode_HESetsStandard(t *testing.T) {
	res := Decode(buildIE(TagElementExtension, heCapsPayload(0xFA, 0xFF)), nil)
	if res.Standard != "802.11ax (WiFi 6)" {
		t.Errorf("standard = %q", res.Standard)
	}
	if res.Derived.SpatialStreams == nil || *res.Derived.SpatialStreams != 2 {
		t.Errorf("streams = %v", res.Derived.SpatialStreams)
	}
}
