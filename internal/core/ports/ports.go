package ports

import (
	"context"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
)

// BSSInfo is one raw scan result as delivered by a provider: the identity
// fields the platform exposes plus the opaque concatenated IE bytes.
type BSSInfo struct {
	SSID         string
	BSSID        string
	RSSI         int
	Channel      int
	Frequency    int // MHz
	Band         domain.Band
	ChannelWidth int // MHz
	IEBytes      []byte
}

// ScanProvider yields the networks visible to one wireless interface.
type ScanProvider interface {
	// Scan performs or retrieves one scan pass. It should respect context
	// cancellation while waiting on the platform.
	Scan(ctx context.Context) ([]BSSInfo, error)
	// Interface returns the name of the underlying interface, if any.
	Interface() string
	// Close releases platform resources (sockets, handles).
	Close() error
}

// VendorLookup resolves a 3-byte OUI to a vendor name. A miss returns "".
// Implementations must be safe for concurrent readers.
type VendorLookup interface {
	VendorName(oui []byte) string
}

// NetworkStore persists survey snapshots.
type NetworkStore interface {
	SaveSnapshot(snap domain.Snapshot) error
	LatestSnapshot() (domain.Snapshot, error)
	Close() error
}

// SurveyService is the core loop: scan, decode, assemble, publish.
type SurveyService interface {
	// Run blocks until ctx is cancelled, scanning on the configured interval.
	Run(ctx context.Context) error
	// TriggerScan requests an immediate scan cycle.
	TriggerScan()
	// Snapshot returns the most recent survey result.
	Snapshot() domain.Snapshot
	// Subscribe returns a channel receiving each new snapshot. The returned
	// cancel func must be called to release the subscription.
	Subscribe() (<-chan domain.Snapshot, func())
}
