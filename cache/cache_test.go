package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.SetDefault("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.ItemCount())

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCache_TouchRenewsExpiry(t *testing.T) {
	c := New(200*time.Millisecond, time.Hour)
	c.SetDefault("s", "x")

	time.Sleep(120 * time.Millisecond)
	_, ok := c.Touch("s")
	require.True(t, ok)

	time.Sleep(120 * time.Millisecond)
	_, ok = c.Get("s")
	assert.True(t, ok, "touched item should outlive its first expiry")

	time.Sleep(250 * time.Millisecond)
	_, ok = c.Get("s")
	assert.False(t, ok)
}

func TestCache_OnEvicted(t *testing.T) {
	c := New(time.Minute, time.Minute)
	var evicted []string
	c.OnEvicted(func(key string, _ interface{}) { evicted = append(evicted, key) })

	c.SetDefault("k", 1)
	c.Delete("k")
	assert.Equal(t, []string{"k"}, evicted)
}
