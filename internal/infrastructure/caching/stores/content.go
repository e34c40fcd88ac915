// Package stores provides concrete cache store implementations
package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

type sectionEntry struct {
	record   *content.SectionRecord
	cachedAt time.Time
}

// ContentStore caches section records in memory with a fixed TTL
type ContentStore struct {
	sections map[string]sectionEntry
	allKnown bool
	allAt    time.Time
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

// NewContentStore creates a new content cache store
func NewContentStore(ttl time.Duration) *ContentStore {
	return &ContentStore{
		sections: make(map[string]sectionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (cs *ContentStore) fresh(at time.Time) bool {
	return cs.ttl <= 0 || cs.now().Sub(at) < cs.ttl
}

// GetSection returns a cached section record. A cached nil record means the
// section is known to be absent.
func (cs *ContentStore) GetSection(name string) (*content.SectionRecord, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, ok := cs.sections[name]
	if !ok || !cs.fresh(entry.cachedAt) {
		return nil, false
	}
	return entry.record, true
}

// SetSection stores a section record, or records its absence when rec is nil
func (cs *ContentStore) SetSection(name string, rec *content.SectionRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.sections[name] = sectionEntry{record: rec, cachedAt: cs.now()}
}

// GetAllSections returns every cached record, ordered by name, when the full
// set was loaded within the TTL.
func (cs *ContentStore) GetAllSections() ([]*content.SectionRecord, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if !cs.allKnown || !cs.fresh(cs.allAt) {
		return nil, false
	}
	out := make([]*content.SectionRecord, 0, len(cs.sections))
	for _, entry := range cs.sections {
		if entry.record != nil {
			out = append(out, entry.record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, true
}

// SetAllSections replaces the cache with a complete set of records
func (cs *ContentStore) SetAllSections(recs []*content.SectionRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	cs.sections = make(map[string]sectionEntry, len(recs))
	for _, rec := range recs {
		cs.sections[rec.Name] = sectionEntry{record: rec, cachedAt: now}
	}
	cs.allKnown = true
	cs.allAt = now
}

// Invalidate drops every cached record
func (cs *ContentStore) Invalidate() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.sections = make(map[string]sectionEntry)
	cs.allKnown = false
}
