package cache

import (
	"sync"
	"time"
)

type Item struct {
	data      []byte
	expiredAt time.Time
}

type Cache struct {
	store map[string]Item
	lock  *sync.RWMutex
	now   func() time.Time
}

func New() *Cache {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		store: map[string]Item{},
		lock:  &sync.RWMutex{},
		now:   now,
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	item, ok := c.store[key]
	if !ok {
		return nil, false
	}

	if c.now().After(item.expiredAt) {
		return nil, false
	}

	return item.data, true
}

func (c *Cache) Set(key string, data []byte, expiredAt time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.store[key] = Item{
		data:      data,
		expiredAt: expiredAt,
	}
}

// Sweep removes expired items and returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.now()

	c.lock.Lock()
	defer c.lock.Unlock()

	removed := 0
	for key, item := range c.store {
		if now.After(item.expiredAt) {
			delete(c.store, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.store)
}
