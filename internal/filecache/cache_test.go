package filecache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := New(Options{TTL: time.Minute})
	c.Set("/srv/index.html", []byte("<html>"))

	body, ok := c.Get("/srv/index.html")
	assert.True(t, ok)
	assert.Equal(t, []byte("<html>"), body)
	assert.Equal(t, 1, c.Len())
}

func TestCache_MissingKey(t *testing.T) {
	c := New(Options{TTL: time.Minute})
	_, ok := c.Get("/srv/absent.html")
	assert.False(t, ok)
}

func TestCache_EntryOverLimitNotStored(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntryBytes: 8})
	c.Set("/srv/big.png", make([]byte, 9))

	_, ok := c.Get("/srv/big.png")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	c := New(Options{TTL: 10 * time.Millisecond, CleanupInterval: time.Hour})
	c.Set("/srv/notes.txt", []byte("text"))

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("/srv/notes.txt")
	assert.False(t, ok)
}

func TestCache_NilIsInert(t *testing.T) {
	var c *Cache
	c.Set("/srv/index.html", []byte("x"))
	_, ok := c.Get("/srv/index.html")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
