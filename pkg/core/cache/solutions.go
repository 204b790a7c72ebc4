// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     cache
// Description: Cache of solved equations keyed by their token sequence
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/msto63/khwarizmi/foundation/algebra"
)

// SolutionCache caches engine results. Entries depend on the engine options,
// so the options are part of the key.
type SolutionCache struct {
	cache *Cache
}

// NewSolutionCache creates a solution cache
func NewSolutionCache(cfg Config) *SolutionCache {
	return &SolutionCache{cache: New(cfg)}
}

// SolutionKey returns the cache key for input solved with options.
// Inputs share a key only when they tokenize to the same sequence, so
// "2x + 3 = 7" hits "2x+3=7" while "2 3x=46" misses "23x=46".
func SolutionKey(input string, options algebra.Options) string {
	raw := fmt.Sprintf("%t|%t|%s", options.StrictDivision, options.SwapSides, algebra.Canonical(input))
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:16])
}

// Get returns a cached result
func (c *SolutionCache) Get(input string, options algebra.Options) (*algebra.Result, bool) {
	val, ok := c.cache.Get(SolutionKey(input, options))
	if !ok {
		return nil, false
	}
	result, ok := val.(*algebra.Result)
	return result, ok
}

// Set stores a result
func (c *SolutionCache) Set(input string, options algebra.Options, result *algebra.Result) {
	c.cache.Set(SolutionKey(input, options), result)
}

// Stats returns cache statistics
func (c *SolutionCache) Stats() Stats {
	return c.cache.Stats()
}

// Clear removes all cached results
func (c *SolutionCache) Clear() {
	c.cache.Clear()
}

// Close stops the background cleanup
func (c *SolutionCache) Close() {
	c.cache.Close()
}
