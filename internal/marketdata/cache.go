package marketdata

import "sync"

// Cache is a mutex-guarded in-memory snapshot of the most recent quote per
// symbol. The streaming feed writes into it; the recalculation path reads
// it before falling back to a direct HTTP fetch.
type Cache struct {
	mu   sync.RWMutex
	data map[string]Quote
}

func NewCache() *Cache {
	return &Cache{data: map[string]Quote{}}
}

func (c *Cache) Set(q Quote) {
	if q.Symbol == "" || !q.Valid() {
		return
	}
	c.mu.Lock()
	c.data[q.Symbol] = q
	c.mu.Unlock()
}

func (c *Cache) Get(symbol string) (Quote, bool) {
	c.mu.RLock()
	q, ok := c.data[symbol]
	c.mu.RUnlock()
	return q, ok
}
