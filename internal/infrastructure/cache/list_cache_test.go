package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/core/record"
)

func TestListCacheReturnsCopies(t *testing.T) {
	c := NewListCache(4, time.Minute)
	rows := []record.Record{record.Of("id", 1, "name", "North")}
	c.Set("district", rows)

	rows[0].Set("name", "changed")
	got, ok := c.Get("district")
	require.True(t, ok)
	assert.Equal(t, "North", got[0].Value("name"))

	got[0].Set("name", "again")
	again, _ := c.Get("district")
	assert.Equal(t, "North", again[0].Value("name"))
}

func TestListCacheInvalidate(t *testing.T) {
	c := NewListCache(4, time.Minute)
	var invalidated []string
	c.OnInvalidate(func(tag string) { invalidated = append(invalidated, tag) })

	c.Set("town", []record.Record{record.Of("id", 1)})
	c.Set("street", nil)
	c.Invalidate("town")

	_, ok := c.Get("town")
	assert.False(t, ok)
	_, ok = c.Get("street")
	assert.True(t, ok)
	assert.Equal(t, []string{"town"}, invalidated)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestListCacheExpires(t *testing.T) {
	c := NewListCache(4, 10*time.Millisecond)
	c.Set("item", []record.Record{record.Of("id", 1)})

	assert.Eventually(t, func() bool {
		_, ok := c.Get("item")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNilListCache(t *testing.T) {
	var c *ListCache
	_, ok := c.Get("x")
	assert.False(t, ok)
	c.Set("x", nil)
	c.Invalidate("x")
	assert.Equal(t, 0, c.Len())
}
