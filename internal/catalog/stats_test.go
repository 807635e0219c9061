package catalog

import (
	"testing"
	"time"
)

func TestLoadStatsSnapshotPercentiles(t *testing.T) {
	stats := NewLoadStats(time.Hour)
	for _, us := range []time.Duration{300, 100, 500, 200, 400} {
		stats.Record(us*time.Microsecond, 1024, false)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 || snap.Failed != 0 {
		t.Fatalf("expected count=5 failed=0, got %+v", snap)
	}
	if snap.TotalBytes != 5*1024 {
		t.Fatalf("expected total_bytes=5120, got %d", snap.TotalBytes)
	}
	if snap.MinUs != 100 || snap.MaxUs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
	if snap.AvgUs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgUs)
	}
	if snap.P50Us != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Us)
	}
	if snap.P95Us != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Us)
	}
	if snap.P99Us != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Us)
	}
}

func TestLoadStatsSubMillisecondImports(t *testing.T) {
	stats := NewLoadStats(time.Hour)
	stats.Record(250*time.Microsecond, 10, false)
	stats.Record(750*time.Microsecond, 10, true)

	snap := stats.Snapshot()
	if snap.MinUs != 250 || snap.MaxUs != 750 {
		t.Fatalf("expected sub-millisecond latencies to be kept, got %+v", snap)
	}
	if snap.AvgUs != 500 {
		t.Fatalf("expected avg=500, got %f", snap.AvgUs)
	}
	if snap.Failed != 1 {
		t.Fatalf("expected one failed import, got %d", snap.Failed)
	}
}

func TestLoadStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewLoadStats(10 * time.Millisecond)
	stats.Record(100*time.Microsecond, 1, false)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(200*time.Microsecond, 1, false)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinUs != 200 || snap.MaxUs != 200 {
		t.Fatalf("expected one fresh sample of 200us, got %+v", snap)
	}
}

func TestLoadStatsClampsNegativeValues(t *testing.T) {
	stats := NewLoadStats(0)
	stats.Record(-10*time.Microsecond, -5, false)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MaxUs != 0 || snap.TotalBytes != 0 {
		t.Fatalf("expected one clamped sample, got %+v", snap)
	}
}

func TestPercentileSingleValue(t *testing.T) {
	if got := percentile([]time.Duration{42 * time.Microsecond}, 95); got != 42 {
		t.Fatalf("expected 42, got %f", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Fatalf("expected 0 for no samples, got %f", got)
	}
}
