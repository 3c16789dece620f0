package oui

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// commonVendors covers the OUIs most often seen in survey captures. It is
// the fallback when no IEEE registry database is loaded.
var commonVendors = map[string]string{
	"00:50:F2": "Microsoft",
	"00:0F:AC": "IEEE 802.11",
	"00:03:7F": "Atheros",
	"00:13:74": "Qualcomm",
	"00:A0:C6": "Qualcomm",
	"8C:FD:F0": "Qualcomm",
	"00:17:F2": "Apple",
	"F0:18:98": "Apple",
	"AC:BC:32": "Apple",
	"00:1A:11": "Google",
	"F4:F5:D8": "Google",
	"00:1D:0F": "TP-Link",
	"50:C7:BF": "TP-Link",
	"EC:08:6B": "TP-Link",
	"00:14:6C": "Netgear",
	"A0:40:A0": "Netgear",
	"00:18:39": "Cisco-Linksys",
	"C0:56:27": "Belkin",
	"00:1F:33": "Netgear",
	"B0:4E:26": "TP-Link",
	"00:26:F2": "Netgear",
	"00:90:4C": "Epigram",
	"00:10:18": "Broadcom",
	"00:E0:4C": "Realtek",
	"08:00:27": "VirtualBox",
	"3C:84:6A": "TP-Link",
	"D8:47:32": "TP-Link",
	"00:24:01": "D-Link",
	"1C:7E:E5": "D-Link",
	"00:26:5A": "D-Link",
	"E8:DE:27": "TP-Link",
	"00:0C:43": "Ralink",
	"00:12:17": "Cisco-Linksys",
	"58:EF:68": "Belkin",
	"94:10:3E": "Belkin",
	"00:1E:58": "D-Link",
	"C8:D7:19": "Cisco-Linksys",
	"20:AA:4B": "Cisco-Linksys",
	"00:25:9C": "Cisco-Linksys",
	"F8:1A:67": "TP-Link",
	"28:C6:8E": "Netgear",
	"44:94:FC": "Netgear",
	"9C:3D:CF": "Netgear",
}

// Entry is one row of the IEEE OUI registry.
type Entry struct {
	Prefix      string
	Vendor      string
	LastUpdated time.Time
}

// Resolver maps OUI prefixes to vendor names. Lookup priority is the
// registry database, then any file-loaded list, then the static common
// table. A nil *Resolver is usable and serves the static table only.
type Resolver struct {
	mu     sync.RWMutex
	db     *sql.DB
	lookup *sql.Stmt
	extra  map[string]string
	cache  map[string]string
}

// NewResolver creates a resolver backed only by the static table.
func NewResolver() *Resolver {
	return &Resolver{
		extra: make(map[string]string),
		cache: make(map[string]string),
	}
}

// NewResolverWithDB opens (or creates) an OUI registry database at dbPath
// and returns a resolver that consults it before the static table.
func NewResolverWithDB(dbPath string) (*Resolver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open oui database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping oui database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS oui_registry (
		prefix TEXT PRIMARY KEY,
		vendor TEXT NOT NULL,
		last_updated INTEGER
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create oui schema: %w", err)
	}

	stmt, err := db.Prepare("SELECT vendor FROM oui_registry WHERE prefix = ?")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare oui lookup: %w", err)
	}

	r := NewResolver()
	r.db = db
	r.lookup = stmt
	return r, nil
}

// VendorName resolves a 3-byte OUI to a vendor name. Locally administered
// addresses are reported as randomized rather than looked up. An empty
// string means the OUI is unknown.
func (r *Resolver) VendorName(oui []byte) string {
	if len(oui) < 3 {
		return ""
	}
	if oui[0]&0x02 != 0 {
		return "Randomized"
	}

	prefix := fmt.Sprintf("%02X:%02X:%02X", oui[0], oui[1], oui[2])

	if r == nil {
		return commonVendors[prefix]
	}

	r.mu.RLock()
	if vendor, ok := r.cache[prefix]; ok {
		r.mu.RUnlock()
		return vendor
	}
	lookup := r.lookup
	r.mu.RUnlock()

	if lookup != nil {
		var vendor string
		err := lookup.QueryRow(prefix).Scan(&vendor)
		if err == nil && vendor != "" {
			r.mu.Lock()
			r.cache[prefix] = vendor
			r.mu.Unlock()
			return vendor
		}
		if err != nil && err != sql.ErrNoRows {
			slog.Debug("OUI database lookup failed", "prefix", prefix, "error", err)
		}
	}

	r.mu.RLock()
	vendor, ok := r.extra[prefix]
	r.mu.RUnlock()
	if ok {
		return vendor
	}

	return commonVendors[prefix]
}

// LoadFile merges a text file of "XX:XX:XX Vendor Name" lines into the
// resolver. Lines starting with # are skipped.
func (r *Resolver) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	loaded := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 8 || strings.HasPrefix(line, "#") {
			continue
		}

		prefix := normalizePrefix(line[:8])
		if !validPrefix(prefix) {
			continue
		}
		vendor := strings.TrimSpace(line[8:])
		if vendor == "" {
			continue
		}
		loaded[prefix] = vendor
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	for prefix, vendor := range loaded {
		r.extra[prefix] = vendor
	}
	r.mu.Unlock()
	return nil
}

// BulkInsert writes registry entries into the database in one transaction.
// Existing prefixes are replaced.
func (r *Resolver) BulkInsert(ctx context.Context, entries []Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return fmt.Errorf("resolver has no registry database")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin oui import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO oui_registry (prefix, vendor, last_updated) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare oui import: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		prefix := normalizePrefix(entry.Prefix)
		if !validPrefix(prefix) || entry.Vendor == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, prefix, entry.Vendor, entry.LastUpdated.Unix()); err != nil {
			return fmt.Errorf("insert oui %s: %w", prefix, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit oui import: %w", err)
	}
	return nil
}

// Count reports the number of registry entries in the database.
func (r *Resolver) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.db == nil {
		return 0, nil
	}
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM oui_registry").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count oui entries: %w", err)
	}
	return count, nil
}

// Close releases the registry database, if any.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lookup != nil {
		r.lookup.Close()
		r.lookup = nil
	}
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

func normalizePrefix(s string) string {
	s = strings.ReplaceAll(s, "-", ":")
	s = strings.ReplaceAll(s, ".", ":")
	return strings.ToUpper(strings.TrimSpace(s))
}

func validPrefix(s string) bool {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return false
	}
	for i, c := range s {
		if i == 2 || i == 5 {
			continue
		}
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
