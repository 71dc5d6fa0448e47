package suggest

import (
	"sync"

	"github.com/bastiangx/wordserve/pkg/dicttree"
	"github.com/charmbracelet/log"
)

// DefaultHotCacheSize is the number of prefixes a Completer caches.
const DefaultHotCacheSize = 2048

// Suggestion is one completed word and its stored score.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer serves predictions from a dicttree.Tree. The tree itself is not
// safe for concurrent use; every access goes through the Completer's lock.
type Completer struct {
	mu       sync.RWMutex
	tree     *dicttree.Tree
	hotCache *HotCache
}

// NewCompleter creates a completer over an empty dictionary.
func NewCompleter() *Completer {
	return NewCompleterFromTree(dicttree.New())
}

// NewCompleterFromTree wraps an already loaded tree. The caller must not
// touch the tree afterwards.
func NewCompleterFromTree(tree *dicttree.Tree) *Completer {
	return &Completer{
		tree:     tree,
		hotCache: NewHotCache(DefaultHotCacheSize),
	}
}

// AddWord inserts word, overwriting the frequency of an existing entry.
func (c *Completer) AddWord(word string, frequency int) {
	if word == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree.Insert(word, frequency)
	c.hotCache.Clear()
}

// AddUnranked inserts word as dicttree.Unranked unless it already has a
// frequency.
func (c *Completer) AddUnranked(word string) {
	if word == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tree.Contains(word) {
		return
	}
	c.tree.InsertWord(word)
	c.hotCache.Clear()
}

// RemoveWord deletes word and reports whether it was present.
func (c *Completer) RemoveWord(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tree.Contains(word) {
		return false
	}
	pruned := c.tree.Remove(word)
	c.hotCache.Clear()
	log.Debug("Removed word", "word", word, "pruned", pruned)
	return true
}

// Contains reports whether word is in the dictionary.
func (c *Completer) Contains(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Contains(word)
}

// Predict returns the most popular completion of prefix.
func (c *Completer) Predict(prefix string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Predict(prefix)
}

// Complete returns up to limit suggestions for prefix. A prefix that is a
// word itself is always the first suggestion.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		return []Suggestion{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if cached, ok := c.hotCache.Get(prefix, limit); ok {
		return cached
	}

	ranked := c.tree.PredictRanked(prefix, limit)
	suggestions := make([]Suggestion, len(ranked))
	for i, r := range ranked {
		suggestions[i] = Suggestion{Word: r.Suffix, Frequency: r.Score}
	}
	c.hotCache.Put(prefix, limit, suggestions)
	return suggestions
}

// Stats returns dictionary and tree shape statistics. They are computed from
// the tree on every call, so removals and lowered frequencies show up at once.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	shape := c.tree.Stats()
	stats := map[string]int{
		"totalWords":   shape.Words,
		"maxFrequency": shape.MaxScore,
		"size":         shape.Size,
		"height":       shape.Height,
		"leaves":       shape.Leaves,
		"maxBranching": shape.MaxBranching,
	}
	for k, v := range c.hotCache.Stats() {
		stats[k] = v
	}
	return stats
}

// LongestWord returns the longest word in the dictionary.
func (c *Completer) LongestWord() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.LongestWord()
}
