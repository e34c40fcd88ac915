package performance

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// OperationStats aggregates completed markers for one operation name
type OperationStats struct {
	Count        int            `json:"count"`
	Failures     int            `json:"failures"`
	TotalTime    time.Duration  `json:"totalTime"`
	SlowestTime  time.Duration  `json:"slowestTime"`
	LastDuration time.Duration  `json:"lastDuration"`
	LastMetadata map[string]any `json:"lastMetadata,omitempty"`
}

// Tracker hands out markers and aggregates their results per operation
type Tracker struct {
	logger        *logging.ChanneledLogger
	slowThreshold time.Duration
	stats         map[string]*OperationStats
	mu            sync.RWMutex
}

// NewTracker creates a tracker; operations slower than slowThreshold are logged at warn level
func NewTracker(logger *logging.ChanneledLogger, slowThreshold time.Duration) *Tracker {
	return &Tracker{
		logger:        logger,
		slowThreshold: slowThreshold,
		stats:         make(map[string]*OperationStats),
	}
}

// StartOperation begins timing an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	return &Marker{
		Operation: operation,
		StartTime: time.Now(),
		tracker:   t,
	}
}

func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	s, ok := t.stats[m.Operation]
	if !ok {
		s = &OperationStats{}
		t.stats[m.Operation] = s
	}
	s.Count++
	if !m.Success {
		s.Failures++
	}
	s.TotalTime += m.Duration
	s.LastDuration = m.Duration
	if m.Duration > s.SlowestTime {
		s.SlowestTime = m.Duration
	}
	if len(m.Metadata) > 0 {
		s.LastMetadata = maps.Clone(m.Metadata)
	}
	t.mu.Unlock()

	if t.logger == nil {
		return
	}
	args := []any{"operation", m.Operation, "duration", m.Duration, "success", m.Success}
	if m.Error != "" {
		args = append(args, "error", m.Error)
	}
	for _, key := range slices.Sorted(maps.Keys(m.Metadata)) {
		args = append(args, key, m.Metadata[key])
	}
	if t.slowThreshold > 0 && m.Duration > t.slowThreshold {
		t.logger.Perf().Warn("Slow operation", args...)
		return
	}
	t.logger.Perf().Debug("Operation completed", args...)
}

// Stats returns a copy of the aggregated statistics
func (t *Tracker) Stats() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]OperationStats, len(t.stats))
	for op, s := range t.stats {
		cp := *s
		cp.LastMetadata = maps.Clone(s.LastMetadata)
		out[op] = cp
	}
	return out
}
