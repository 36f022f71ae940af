package planning

import (
	"container/list"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aisimcore/simcore/internal/domain"
)

// PromptKey identifies a cacheable plan request. Two
// keys built from the same tool set in different orders compare equal
// via String(), satisfying P14 (prompt-key order independence) —
// ToolNames is sorted once at construction so no caller has to
// remember to do it.
type PromptKey struct {
	NormalizedPrompt string
	Model            string
	TemperatureQ     int // temperature quantized to hundredths, e.g. 0.73 -> 73
	ToolNames        []string
}

// NewPromptKey builds a PromptKey, quantizing temperature to 0.01 and
// sorting toolNames so permutations of the same tool set hash and
// compare identically.
func NewPromptKey(prompt, model string, temperature float64, toolNames []string) PromptKey {
	sorted := append([]string(nil), toolNames...)
	sort.Strings(sorted)
	return PromptKey{
		NormalizedPrompt: normalizePrompt(prompt),
		Model:            model,
		TemperatureQ:     int(temperature*100 + 0.5),
		ToolNames:        sorted,
	}
}

func normalizePrompt(p string) string {
	return strings.Join(strings.Fields(strings.ToLower(p)), " ")
}

// String renders a canonical cache key, used both as the map key and
// as the basis for hit/miss comparisons.
func (k PromptKey) String() string {
	return fmt.Sprintf("%s|%s|%d|%s", k.NormalizedPrompt, k.Model, k.TemperatureQ, strings.Join(k.ToolNames, ","))
}

// CachedPlan is the value stored per PromptKey.
type CachedPlan struct {
	Plan        domain.PlanIntent
	CreatedAt   int64 // unix nanos, caller-supplied for determinism in tests
	TokensSaved int
}

// HitKind tags how a Get request was satisfied.
type HitKind int

const (
	Miss HitKind = iota
	HitExact
	HitSimilar
)

// GetResult is the outcome of a Get call. Score is only meaningful for
// HitSimilar, and is the similarity score scaled by 100.
type GetResult struct {
	Plan  domain.PlanIntent
	Kind  HitKind
	Score int
}

// defaultSimilarityThreshold is the minimum symmetric similarity score
// (in [0,1]) a near-match must clear to count as HitSimilar.
const defaultSimilarityThreshold = 0.85

// defaultTemperatureWindow bounds how far (in quantized hundredths) a
// candidate's temperature may drift from the query's for a similarity
// scan to consider it.
const defaultTemperatureWindow = 10

// Cache is a thread-safe LRU Plan Cache. A sync.Mutex guards the LRU
// list and entry map; Telemetry, not this cache, is the lock-free
// component, so a plain mutex here is the right match for this
// component's own contract rather than an xsync map.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	threshold   float64
	tempWindow  int
	similarity  SimilarityFunc

	hits, misses, similarityHits, evictions int64
}

// SimilarityFunc scores the similarity of two normalized prompts in
// [0,1] and MUST be symmetric.
type SimilarityFunc func(a, b string) float64

type cacheEntry struct {
	key   PromptKey
	value CachedPlan
}

// NewCache creates a Cache with the given LRU capacity, using
// token-set Jaccard overlap as the default similarity function.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity:   capacity,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		threshold:  defaultSimilarityThreshold,
		tempWindow: defaultTemperatureWindow,
		similarity: TokenSetSimilarity,
	}
}

// WithSimilarity overrides the similarity function and/or threshold.
func (c *Cache) WithSimilarity(fn SimilarityFunc, threshold float64) *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.similarity = fn
	c.threshold = threshold
	return c
}

// Get looks up k, falling back to a bounded similarity scan over
// same-model, near-temperature entries.
func (c *Cache) Get(k PromptKey) GetResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[k.String()]; ok {
		c.order.MoveToFront(el)
		c.hits++
		return GetResult{Plan: el.Value.(*cacheEntry).value.Plan, Kind: HitExact}
	}
	c.misses++

	var (
		bestScore float64
		bestEl    *list.Element
	)
	for el := c.order.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*cacheEntry)
		if entry.key.Model != k.Model {
			continue
		}
		if absInt(entry.key.TemperatureQ-k.TemperatureQ) > c.tempWindow {
			continue
		}
		score := c.similarity(entry.key.NormalizedPrompt, k.NormalizedPrompt)
		if score > bestScore {
			bestScore = score
			bestEl = el
		}
	}

	if bestEl != nil && bestScore >= c.threshold {
		c.order.MoveToFront(bestEl)
		c.similarityHits++
		return GetResult{
			Plan:  bestEl.Value.(*cacheEntry).value.Plan,
			Kind:  HitSimilar,
			Score: int(bestScore * 100),
		}
	}

	return GetResult{Kind: Miss}
}

// Put inserts or updates k, evicting the least-recently-used entry
// when capacity is exceeded.
func (c *Cache) Put(k PromptKey, v CachedPlan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := k.String()
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).value = v
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&cacheEntry{key: k, value: v})
	c.entries[key] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key.String())
			c.evictions++
		}
	}
}

// Clear resets entries AND counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits, c.misses, c.similarityHits, c.evictions = 0, 0, 0, 0
}

// CacheStats is a point-in-time read of the cache's thread-safe counters.
type CacheStats struct {
	Hits, Misses, SimilarityHits, Evictions int64
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, SimilarityHits: c.similarityHits, Evictions: c.evictions}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// TokenSetSimilarity is the default SimilarityFunc: Jaccard overlap of
// whitespace-delimited token sets, which is inherently symmetric and
// bounded to [0,1].
func TokenSetSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(s)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
