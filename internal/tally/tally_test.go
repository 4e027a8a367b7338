// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopStableTies(t *testing.T) {
	var c Counter
	for _, k := range []string{"world", "politics", "sport", "politics", "culture", "sport"} {
		c.Add(k)
	}

	got := c.Top(0)
	want := []Entry{{"politics", 2}, {"sport", 2}, {"world", 1}, {"culture", 1}}
	assert.Equal(t, want, got)
	assert.Equal(t, 4, c.Len())
}

func TestTopLimit(t *testing.T) {
	var c Counter
	c.AddN("a", 3)
	c.Add("b")
	c.AddN("c", 5)

	assert.Equal(t, []Entry{{"c", 5}, {"a", 3}}, c.Top(2))
	assert.Len(t, c.Top(10), 3)
	assert.Equal(t, 3, c.Count("a"))
	assert.Equal(t, 0, c.Count("missing"))
}

func TestZeroValue(t *testing.T) {
	var c Counter
	assert.Empty(t, c.Top(5))
	assert.Equal(t, 0, c.Count("x"))
}
