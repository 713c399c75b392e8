package simulation

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// DefaultTheoryTTL is how long closed-form results stay cached.
const DefaultTheoryTTL = 10 * time.Minute

// Theoretical is the closed-form assessment of a parlay.
type Theoretical struct {
	WinProbability float64 `json:"win_probability" yaml:"win_probability"`
	WinPayout      float64 `json:"win_payout" yaml:"win_payout"`
	LossPayout     float64 `json:"loss_payout" yaml:"loss_payout"`
	EVPerUnitStake float64 `json:"ev_per_unit_stake" yaml:"ev_per_unit_stake"`
}

// ComputeTheoretical returns the exact win probability and EV per unit stake
// for independent legs with the given probabilities.
func ComputeTheoretical(probabilities []float64, multiplier float64) Theoretical {
	winProb := 1.0
	for _, p := range probabilities {
		winProb *= p
	}
	winPayout := multiplier - 1
	lossPayout := -1.0
	return Theoretical{
		WinProbability: winProb,
		WinPayout:      winPayout,
		LossPayout:     lossPayout,
		EVPerUnitStake: winProb*winPayout + (1-winProb)*lossPayout,
	}
}

// TheoryCache memoises closed-form results. Simulated figures are never cached.
type TheoryCache struct {
	cache      *cache.Cache
	maxEntries int
	hits       atomic.Uint64
	misses     atomic.Uint64
}

// NewTheoryCache creates a cache. maxEntries <= 0 means unbounded.
func NewTheoryCache(ttl time.Duration, maxEntries int) *TheoryCache {
	return &TheoryCache{
		cache:      cache.New(ttl, ttl*2),
		maxEntries: maxEntries,
	}
}

// Get returns the cached result for the inputs, computing and storing it on a miss.
func (tc *TheoryCache) Get(probabilities []float64, multiplier float64) Theoretical {
	key := theoryKey(probabilities, multiplier)
	if v, found := tc.cache.Get(key); found {
		if th, ok := v.(Theoretical); ok {
			tc.hits.Add(1)
			return th
		}
	}
	tc.misses.Add(1)
	th := ComputeTheoretical(probabilities, multiplier)
	if tc.maxEntries <= 0 || tc.cache.ItemCount() < tc.maxEntries {
		tc.cache.SetDefault(key, th)
	}
	return th
}

// Stats returns hit and miss counts.
func (tc *TheoryCache) Stats() (hits, misses uint64) {
	return tc.hits.Load(), tc.misses.Load()
}

// Len returns the number of cached entries.
func (tc *TheoryCache) Len() int {
	return tc.cache.ItemCount()
}

func theoryKey(probabilities []float64, multiplier float64) string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(multiplier, 'g', -1, 64))
	for _, p := range probabilities {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
	}
	return b.String()
}
