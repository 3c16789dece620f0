package survey

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
	"github.com/lcalzada-xor/wsurvey/internal/ie"
	"github.com/lcalzada-xor/wsurvey/internal/radio"
	"github.com/lcalzada-xor/wsurvey/internal/telemetry"
)

// Service runs the survey loop: scan, decode every network's IE bytes,
// assemble the final records, persist and publish them.
type Service struct {
	provider ports.ScanProvider
	vendors  ports.VendorLookup
	store    ports.NetworkStore // may be nil (persistence disabled)
	interval time.Duration

	trigger chan struct{}

	mu     sync.RWMutex
	latest domain.Snapshot
	subs   map[chan domain.Snapshot]struct{}
}

// New creates a survey service scanning on the given interval.
func New(provider ports.ScanProvider, vendors ports.VendorLookup, store ports.NetworkStore, interval time.Duration) *Service {
	return &Service{
		provider: provider,
		vendors:  vendors,
		store:    store,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		subs:     make(map[chan domain.Snapshot]struct{}),
	}
}

// Run blocks until ctx is cancelled, running one scan cycle per interval
// plus any explicitly triggered cycles.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Immediate first cycle so the API has data right away.
	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		case <-s.trigger:
			s.runCycle(ctx)
		}
	}
}

// TriggerScan requests an immediate scan cycle. Non-blocking; a pending
// trigger coalesces with this one.
func (s *Service) TriggerScan() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Snapshot returns the most recent survey result.
func (s *Service) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Subscribe registers a snapshot listener. Slow subscribers drop snapshots
// instead of blocking the survey loop.
func (s *Service) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 4)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Service) runCycle(ctx context.Context) {
	iface := s.provider.Interface()

	results, err := s.provider.Scan(ctx)
	if err != nil {
		telemetry.ScanErrors.WithLabelValues(iface).Inc()
		slog.Error("Scan failed", "interface", iface, "error", err)
		return
	}

	snap := domain.Snapshot{
		CycleID:   uuid.NewString(),
		Taken:     time.Now(),
		Interface: iface,
		Networks:  make([]domain.Network, 0, len(results)),
	}
	for _, bss := range results {
		snap.Networks = append(snap.Networks, s.assemble(bss, snap.CycleID, snap.Taken))
	}

	telemetry.ScanCycles.WithLabelValues(iface).Inc()
	telemetry.NetworksObserved.WithLabelValues(iface).Add(float64(len(snap.Networks)))

	s.mu.Lock()
	s.latest = snap
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveSnapshot(snap); err != nil {
			slog.Error("Failed to persist snapshot", "cycle", snap.CycleID, "error", err)
		}
	}

	slog.Info("Scan cycle complete", "cycle", snap.CycleID, "networks", len(snap.Networks))
}

// assemble merges one raw scan result with everything decoded from its IE
// bytes into the final network record.
func (s *Service) assemble(bss ports.BSSInfo, cycleID string, taken time.Time) domain.Network {
	start := time.Now()
	res := ie.Decode(bss.IEBytes, s.vendors)
	telemetry.DecodeDuration.Observe(time.Since(start).Seconds())
	for _, elem := range res.Elements {
		telemetry.ElementsDecoded.WithLabelValues(elem.Name).Inc()
	}

	n := domain.Network{
		SSID:         bss.SSID,
		BSSID:        bss.BSSID,
		RSSI:         bss.RSSI,
		Channel:      bss.Channel,
		Frequency:    bss.Frequency,
		Band:         bss.Band,
		ChannelWidth: bss.ChannelWidth,
		Elements:     res.Elements,
		Derived:      res.Derived,
		CycleID:      cycleID,
		LastSeen:     taken,
	}

	if mac, err := net.ParseMAC(bss.BSSID); err == nil && len(mac) >= 3 && s.vendors != nil {
		n.Vendor = s.vendors.VendorName(mac[:3])
	}

	// Providers that replay raw frames may not carry the SSID as an
	// identity field; take it from the decoded element instead.
	if n.SSID == "" {
		for _, elem := range res.Elements {
			if elem.ElementID == ie.TagSSID {
				n.SSID = elem.Summary
				break
			}
		}
	}

	// Fill in what the provider left out.
	if n.Band == domain.BandUnknown && n.Frequency > 0 {
		n.Band = radio.BandForFrequency(n.Frequency)
	}
	if n.Channel == 0 && n.Frequency > 0 {
		n.Channel = radio.FrequencyToChannel(n.Frequency)
	}
	if n.Frequency == 0 && n.Channel > 0 {
		n.Frequency = radio.CenterFrequency(n.Channel, n.Band)
	}
	if n.ChannelWidth == 0 {
		n.ChannelWidth = 20
	}

	// Capability-based generation first; band inference only as fallback
	// for scans that carried no IE bytes.
	gen := res.Standard
	if gen == domain.GenUnknown {
		gen = inferGeneration(n.Band)
	}
	n.Standard = string(gen)

	n.BasicRates = ie.BasicRates(bss.IEBytes)
	if len(n.BasicRates) == 0 {
		n.BasicRates = radio.BasicRates(gen)
	}

	n.MaxRate = radio.MaxRateEstimate(gen, n.ChannelWidth)
	for _, r := range n.BasicRates {
		if n.MinRate == 0 || r < n.MinRate {
			n.MinRate = r
		}
	}
	if n.MinRate == 0 && n.MaxRate > 0 {
		// Crude 10%-of-max fallback; see radio.FallbackMinRate.
		n.MinRate = radio.FallbackMinRate(n.MaxRate)
	}

	return n
}

// inferGeneration guesses the PHY generation from the band alone. Only used
// when the scan carried no capability elements to decode.
func inferGeneration(band domain.Band) domain.Generation {
	switch band {
	case domain.Band24GHz:
		return domain.Gen11G
	case domain.Band5GHz:
		return domain.Gen11A
	case domain.Band6GHz:
		return domain.Gen11AX
	}
	return domain.GenUnknown
}
