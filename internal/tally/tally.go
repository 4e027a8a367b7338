// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tally counts string keys and ranks them by frequency. Ties keep
// the order in which keys were first seen.
package tally

import "sort"

// Entry is one ranked key.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Counter is an insertion-ordered frequency counter. The zero value is ready
// to use.
type Counter struct {
	index map[string]int
	items []Entry
}

// Add increments key by one.
func (c *Counter) Add(key string) { c.AddN(key, 1) }

// AddN increments key by n.
func (c *Counter) AddN(key string, n int) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[key]
	if !ok {
		c.index[key] = len(c.items)
		c.items = append(c.items, Entry{Key: key, Count: n})
		return
	}
	c.items[i].Count += n
}

// Count returns the count for key.
func (c *Counter) Count(key string) int {
	if i, ok := c.index[key]; ok {
		return c.items[i].Count
	}
	return 0
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.items) }

// Top returns up to n entries by descending count. n <= 0 returns all.
func (c *Counter) Top(n int) []Entry {
	out := make([]Entry, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
