package oui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVendorName_StaticTable(t *testing.T) {
	r := NewResolver()

	if got := r.VendorName([]byte{0x00, 0x50, 0xF2}); got != "Microsoft" {
		t.Errorf("Microsoft OUI resolved to %q", got)
	}
	if got := r.VendorName([]byte{0x00, 0x0F, 0xAC}); got != "IEEE 802.11" {
		t.Errorf("IEEE OUI resolved to %q", got)
	}
	if got := r.VendorName([]byte{0x00, 0x99, 0x99}); got != "" {
		t.Errorf("unknown OUI resolved to %q, want empty", got)
	}
}

func TestVendorName_RandomizedMAC(t *testing.T) {
	r := NewResolver()

	// Locally administered bit set in the first octet.
	for _, first := range []byte{0x02, 0x06, 0x0A, 0x0E, 0x52} {
		if got := r.VendorName([]byte{first, 0x11, 0x22}); got != "Randomized" {
			t.Errorf("first octet %#02x resolved to %q, want Randomized", first, got)
		}
	}
}

func TestVendorName_ShortInput(t *testing.T) {
	r := NewResolver()
	if got := r.VendorName([]byte{0x00}); got != "" {
		t.Errorf("short OUI resolved to %q, want empty", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ouis.txt")
	content := "# comment line\n" +
		"A8:BB:01 Acme Wireless\n" +
		"a8-bb-02 Lowercase Vendor\n" +
		"not-a-prefix nothing\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewResolver()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if got := r.VendorName([]byte{0xA8, 0xBB, 0x01}); got != "Acme Wireless" {
		t.Errorf("loaded OUI resolved to %q", got)
	}
	if got := r.VendorName([]byte{0xA8, 0xBB, 0x02}); got != "Lowercase Vendor" {
		t.Errorf("lowercase prefix resolved to %q", got)
	}
}

func TestResolverWithDB_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "oui.db")
	r, err := NewResolverWithDB(dbPath)
	if err != nil {
		t.Fatalf("NewResolverWithDB: %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	entries := []Entry{
		{Prefix: "A8:CC:01", Vendor: "Registry Vendor", LastUpdated: time.Now()},
		{Prefix: "a8-cc-02", Vendor: "Dashed Vendor", LastUpdated: time.Now()},
		{Prefix: "bogus", Vendor: "Skipped"},
	}
	if err := r.BulkInsert(ctx, entries); err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}

	count, err := r.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	if got := r.VendorName([]byte{0xA8, 0xCC, 0x01}); got != "Registry Vendor" {
		t.Errorf("database OUI resolved to %q", got)
	}
	// Second lookup should hit the cache and agree.
	if got := r.VendorName([]byte{0xA8, 0xCC, 0x01}); got != "Registry Vendor" {
		t.Errorf("cached OUI resolved to %q", got)
	}
	if got := r.VendorName([]byte{0xA8, 0xCC, 0x02}); got != "Dashed Vendor" {
		t.Errorf("normalized OUI resolved to %q", got)
	}

	// Static table still serves misses.
	if got := r.VendorName([]byte{0x00, 0x50, 0xF2}); got != "Microsoft" {
		t.Errorf("static fallback resolved to %q", got)
	}
}
