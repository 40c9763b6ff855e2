package scoring

import (
	"sync"
	"time"
)

// ScoreCache guarda o último bonus score calculado por oferta, com TTL
// curto. A entrada só é válida enquanto o criativo corrente da oferta for o
// mesmo que gerou o score: trocar de criativo invalida a entrada na leitura.
type ScoreCache struct {
	mu      sync.Mutex
	entries map[int64]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	creativeID int64
	data       any
	expiresAt  time.Time
}

func NewScoreCache(ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ScoreCache{
		entries: make(map[int64]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retorna o score da oferta se a entrada ainda é válida e pertence ao
// criativo informado. Entradas expiradas ou de outro criativo são removidas.
func (c *ScoreCache) Get(offerID, creativeID int64) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[offerID]
	if !ok {
		return nil, false
	}

	if c.now().After(entry.expiresAt) || entry.creativeID != creativeID {
		delete(c.entries, offerID)
		return nil, false
	}

	return entry.data, true
}

func (c *ScoreCache) Set(offerID, creativeID int64, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[offerID] = cacheEntry{
		creativeID: creativeID,
		data:       data,
		expiresAt:  c.now().Add(c.ttl),
	}
}

// Clear remove a entrada de uma oferta específica.
func (c *ScoreCache) Clear(offerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, offerID)
}

// ClearAll descarta todas as entradas (usado após o sync diário).
func (c *ScoreCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int64]cacheEntry)
}

// Stats retorna o número de entradas vivas e expiradas, para diagnóstico.
func (c *ScoreCache) Stats() (live, expired int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			expired++
		} else {
			live++
		}
	}
	return live, expired
}
