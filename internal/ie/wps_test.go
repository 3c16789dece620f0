package ie

import (
	"strings"
	"testing"
)

func TestDecodeWPS_Configured(t *testing.T) {
	data := []byte{0x10, 0x44, 0x00, 0x01, 0x02}

	_, info := decodeWPS(data)
	if !info.Configured {
		t.Error("state 0x02 must mean configured")
	}

	data[4] = 0x01
	_, info = decodeWPS(data)
	if info.Configured {
		t.Error("state 0x01 must mean unconfigured")
	}
}

func TestDecodeWPS_DeviceMetadata(t *testing.T) {
	data := []byte{
		0x10, 0x21, 0x00, 0x04, 'A', 'C', 'M', 'E',
		0x10, 0x23, 0x00, 0x05, 'R', 'T', '-', 'A', 'X',
		0x10, 0x24, 0x00, 0x02, 'v', '2',
		0x10, 0x42, 0x00, 0x03, '0', '0', '7',
		0x10, 0x11, 0x00, 0x06, 'R', 'o', 'u', 't', 'e', 'r',
	}

	d, info := decodeWPS(data)
	if info.Manufacturer != "ACME" {
		t.Errorf("manufacturer = %q", info.Manufacturer)
	}
	if info.ModelName != "RT-AX" {
		t.Errorf("model name = %q", info.ModelName)
	}
	if info.ModelNumber != "v2" {
		t.Errorf("model number = %q", info.ModelNumber)
	}
	if info.SerialNumber != "007" {
		t.Errorf("serial = %q", info.SerialNumber)
	}
	if info.DeviceName != "Router" {
		t.Errorf("device name = %q", info.DeviceName)
	}
	if !strings.Contains(d.Summary, "ACME") {
		t.Errorf("summary = %q", d.Summary)
	}
}

func TestDecodeWPS_ConfigMethods(t *testing.T) {
	// PushButton | Display | Keypad
	data := []byte{0x10, 0x08, 0x00, 0x02, 0x01, 0x88}

	_, info := decodeWPS(data)
	want := []string{"Display", "PushButton", "Keypad"}
	if len(info.SupportedMethods) != len(want) {
		t.Fatalf("methods = %v, want %v", info.SupportedMethods, want)
	}
	for i := range want {
		if info.SupportedMethods[i] != want[i] {
			t.Errorf("methods = %v, want %v", info.SupportedMethods, want)
			break
		}
	}
}

func TestDecodeWPS_PrimaryDeviceType(t *testing.T) {
	// Category 6 (Network Infrastructure), subcategory 1 (AP)
	data := []byte{
		0x10, 0x54, 0x00, 0x08,
		0x00, 0x06, 0x00, 0x50, 0xF2, 0x04, 0x00, 0x01,
	}

	_, info := decodeWPS(data)
	if !info.IsAccessPoint {
		t.Error("category 6 subcategory 1 must mark an access point")
	}
	if info.PrimaryDeviceType != "Network Infrastructure (Access Point)" {
		t.Errorf("device type = %q", info.PrimaryDeviceType)
	}
}

func TestDecodeWPS_UnknownAttributeSkipped(t *testing.T) {
	data := []byte{
		0x10, 0x3C, 0x00, 0x01, 0x01, // RF bands, not decoded
		0x10, 0x44, 0x00, 0x01, 0x02,
	}

	_, info := decodeWPS(data)
	if !info.Configured {
		t.Error("attribute after an unknown one was not decoded")
	}
}

func TestDecodeWPS_TruncatedTrailing(t *testing.T) {
	data := []byte{
		0x10, 0x44, 0x00, 0x01, 0x02,
		0x10, 0x21, 0x00, 0x20, 'A', // declares 32 bytes, has 1
	}

	_, info := decodeWPS(data)
	if !info.Configured {
		t.Error("leading complete attribute lost")
	}
	if info.Manufacturer != "" {
		t.Errorf("manufacturer = %q, want empty", info.Manufacturer)
	}
}
