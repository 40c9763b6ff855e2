package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreCache(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	newCacheAt := func(ttl time.Duration) (*ScoreCache, *time.Time) {
		current := base
		cache := NewScoreCache(ttl)
		cache.now = func() time.Time { return current }
		return cache, &current
	}

	t.Run("Entrada válida dentro do TTL é retornada", func(t *testing.T) {
		cache, _ := newCacheAt(5 * time.Minute)

		cache.Set(100, 1, "score")

		got, ok := cache.Get(100, 1)
		assert.True(t, ok)
		assert.Equal(t, "score", got)
	})

	t.Run("Entrada expirada é removida na leitura", func(t *testing.T) {
		cache, now := newCacheAt(5 * time.Minute)

		cache.Set(100, 1, "score")
		*now = base.Add(6 * time.Minute)

		got, ok := cache.Get(100, 1)
		assert.False(t, ok)
		assert.Nil(t, got)

		live, expired := cache.Stats()
		assert.Equal(t, 0, live)
		assert.Equal(t, 0, expired)
	})

	t.Run("Troca de criativo corrente invalida a entrada", func(t *testing.T) {
		cache, _ := newCacheAt(5 * time.Minute)

		cache.Set(100, 1, "score")

		got, ok := cache.Get(100, 2)
		assert.False(t, ok)
		assert.Nil(t, got)

		// A entrada antiga foi descartada, mesmo para o criativo original
		_, ok = cache.Get(100, 1)
		assert.False(t, ok)
	})

	t.Run("Clear remove apenas a oferta informada", func(t *testing.T) {
		cache, _ := newCacheAt(5 * time.Minute)

		cache.Set(100, 1, "a")
		cache.Set(200, 2, "b")

		cache.Clear(100)

		_, ok := cache.Get(100, 1)
		assert.False(t, ok)

		got, ok := cache.Get(200, 2)
		assert.True(t, ok)
		assert.Equal(t, "b", got)
	})

	t.Run("ClearAll descarta todas as entradas", func(t *testing.T) {
		cache, _ := newCacheAt(5 * time.Minute)

		cache.Set(100, 1, "a")
		cache.Set(200, 2, "b")

		cache.ClearAll()

		live, expired := cache.Stats()
		assert.Equal(t, 0, live)
		assert.Equal(t, 0, expired)
	})

	t.Run("Stats distingue entradas vivas de expiradas", func(t *testing.T) {
		cache, now := newCacheAt(5 * time.Minute)

		cache.Set(100, 1, "a")
		*now = base.Add(3 * time.Minute)
		cache.Set(200, 2, "b")
		*now = base.Add(6 * time.Minute)

		live, expired := cache.Stats()
		assert.Equal(t, 1, live)
		assert.Equal(t, 1, expired)
	})

	t.Run("TTL não positivo usa o padrão de cinco minutos", func(t *testing.T) {
		cache := NewScoreCache(0)
		assert.Equal(t, 5*time.Minute, cache.ttl)
	})
}
