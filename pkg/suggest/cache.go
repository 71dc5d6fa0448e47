package suggest

import (
	"math"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
)

type cacheEntry struct {
	suggestions []Suggestion
	accessTime  int64
}

// HotCache keeps the suggestions of recently completed prefixes. Entries are
// evicted least recently used first and the whole cache is dropped whenever
// the dictionary changes.
type HotCache struct {
	entries     map[string]*cacheEntry
	accessCount int64
	hits        int
	maxEntries  int
	mu          sync.Mutex
}

// NewHotCache creates a cache holding at most maxEntries prefixes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    make(map[string]*cacheEntry, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(prefix string, limit int) string {
	return strconv.Itoa(limit) + ":" + prefix
}

// Get returns a copy of the cached suggestions for prefix and limit.
func (hc *HotCache) Get(prefix string, limit int) ([]Suggestion, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	e, ok := hc.entries[cacheKey(prefix, limit)]
	if !ok {
		return nil, false
	}
	hc.hits++
	e.accessTime = hc.getNextAccessTime()
	return append([]Suggestion(nil), e.suggestions...), true
}

// Put stores suggestions for prefix and limit.
func (hc *HotCache) Put(prefix string, limit int, suggestions []Suggestion) {
	if hc.maxEntries <= 0 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	key := cacheKey(prefix, limit)
	if _, exists := hc.entries[key]; !exists && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[key] = &cacheEntry{
		suggestions: append([]Suggestion(nil), suggestions...),
		accessTime:  hc.getNextAccessTime(),
	}
}

// Clear drops every entry.
func (hc *HotCache) Clear() {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if len(hc.entries) > 0 {
		log.Debugf("Dropping %d cached prefixes", len(hc.entries))
	}
	hc.entries = make(map[string]*cacheEntry, hc.maxEntries)
}

// Stats reports cache occupancy and hits.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheEntries": len(hc.entries),
		"maxHotEntries":   hc.maxEntries,
		"hotCacheHits":    hc.hits,
	}
}

func (hc *HotCache) getNextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, e := range hc.entries {
		if e.accessTime < oldestTime {
			oldestTime = e.accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(hc.entries, oldestKey)
		log.Debugf("Evicted '%s' from hot cache", oldestKey)
	}
}
