package util

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// TimerStats summarizes the runs of one named phase, in milliseconds.
type TimerStats struct {
	Name  string
	Last  float64
	Total float64
	Count int64
	Min   float64
	Max   float64
}

func (s TimerStats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Total / float64(s.Count)
}

func (s TimerStats) String() string {
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms (%d runs)", s.Name, s.Last, s.Average(), s.Min, s.Max, s.Count)
}

// Timer keeps running statistics for named phases. It is safe for
// concurrent use.
type Timer struct {
	mu    sync.Mutex
	stats map[string]*TimerStats
	names []string
}

func NewTimer() *Timer {
	return &Timer{stats: make(map[string]*TimerStats)}
}

// Start begins a run of the named phase. The returned func ends it and
// reports its duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	start := time.Now()
	return func() float64 {
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		t.record(name, elapsed)
		return elapsed
	}
}

func (t *Timer) record(name string, elapsed float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats, ok := t.stats[name]
	if !ok {
		t.names = append(t.names, name)
		stats = &TimerStats{Name: name, Min: math.MaxFloat64}
		t.stats[name] = stats
	}
	stats.Last = elapsed
	stats.Total += elapsed
	stats.Count++
	stats.Min = math.Min(stats.Min, elapsed)
	stats.Max = math.Max(stats.Max, elapsed)
}

func (t *Timer) Stats(name string) (TimerStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats, ok := t.stats[name]
	if !ok {
		return TimerStats{Name: name}, false
	}
	return *stats, true
}

func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = make(map[string]*TimerStats)
	t.names = nil
}

// String lists all phases in the order they were first recorded.
func (t *Timer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]string, 0, len(t.names))
	for _, name := range t.names {
		lines = append(lines, t.stats[name].String())
	}
	return strings.Join(lines, "\n")
}
