package catalog

import (
	"slices"
	"sync"
	"time"
)

type importSample struct {
	at      time.Time
	elapsed time.Duration
	bytes   int64
	failed  bool
}

// StatsSnapshot aggregates the imports seen in the current window. Latencies
// are in microseconds; most exchange files decode in well under a millisecond.
type StatsSnapshot struct {
	Count      int     `json:"count"`
	Failed     int     `json:"failed"`
	TotalBytes int64   `json:"total_bytes"`
	MinUs      int64   `json:"min_us"`
	MaxUs      int64   `json:"max_us"`
	AvgUs      float64 `json:"avg_us"`
	P50Us      float64 `json:"p50_us"`
	P95Us      float64 `json:"p95_us"`
	P99Us      float64 `json:"p99_us"`
}

// LoadStats tracks recent document imports within a rolling window.
type LoadStats struct {
	mu      sync.Mutex
	samples []importSample
	window  time.Duration
}

func NewLoadStats(window time.Duration) *LoadStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LoadStats{
		samples: make([]importSample, 0, 64),
		window:  window,
	}
}

// Record notes one import of size bytes that took elapsed.
func (s *LoadStats) Record(elapsed time.Duration, size int64, failed bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, importSample{
		at:      now,
		elapsed: max(elapsed, 0),
		bytes:   max(size, 0),
		failed:  failed,
	})
}

func (s *LoadStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	snap := StatsSnapshot{Count: len(s.samples)}
	elapsed := make([]time.Duration, 0, len(s.samples))
	var sum time.Duration
	for _, sm := range s.samples {
		elapsed = append(elapsed, sm.elapsed)
		sum += sm.elapsed
		snap.TotalBytes += sm.bytes
		if sm.failed {
			snap.Failed++
		}
	}
	slices.Sort(elapsed)

	snap.MinUs = elapsed[0].Microseconds()
	snap.MaxUs = elapsed[len(elapsed)-1].Microseconds()
	snap.AvgUs = micros(sum) / float64(len(elapsed))
	snap.P50Us = percentile(elapsed, 50)
	snap.P95Us = percentile(elapsed, 95)
	snap.P99Us = percentile(elapsed, 99)
	return snap
}

func (s *LoadStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.samples) && s.samples[i].at.Before(cutoff) {
		i++
	}
	// Samples are appended in time order, so expired ones form a prefix.
	s.samples = append(s.samples[:0], s.samples[i:]...)
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// percentile interpolates linearly between the two closest ranks and returns
// microseconds.
func percentile(sorted []time.Duration, pct float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case pct <= 0:
		return micros(sorted[0])
	case pct >= 100:
		return micros(sorted[n-1])
	}

	index := float64(n-1) * pct / 100
	lower := int(index)
	if lower+1 >= n {
		return micros(sorted[lower])
	}
	lo, hi := micros(sorted[lower]), micros(sorted[lower+1])
	return lo + (hi-lo)*(index-float64(lower))
}
