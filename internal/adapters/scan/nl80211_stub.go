//go:build !linux

package scan

import (
	"errors"

	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
)

// ErrUnsupported is returned on platforms without nl80211.
var ErrUnsupported = errors.New("nl80211 scanning is only supported on linux")

// NewNL80211Provider is unavailable off Linux; callers should fall back to
// the pcap or mock providers.
func NewNL80211Provider(iface string) (ports.ScanProvider, error) {
	return nil, ErrUnsupported
}
