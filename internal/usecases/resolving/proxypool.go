package resolving

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/autoads-api/internal/domain"
)

// failureResetAfter é o tempo sem falhas após o qual um proxy desabilitado
// automaticamente volta a ser elegível.
const failureResetAfter = time.Hour

var ErrProxyNotFound = errors.New("proxy não encontrado no pool")

type proxyState struct {
	url          string
	country      string
	isDefault    bool
	enabled      bool
	disabledBy   string // "auto" ou "admin"
	failureCount int
	successCount int
	lastFailure  time.Time
	lastUsedAt   time.Time
}

// ProxyPool mantém o estado de saúde dos proxies de saída usados na fase
// browser da resolução. Proxies que acumulam falhas consecutivas são
// desabilitados automaticamente; sucesso reduz o contador de falhas.
type ProxyPool struct {
	mu           sync.Mutex
	proxies      map[string]*proxyState
	order        []string
	failureLimit int
	now          func() time.Time
}

// ProxyEntry descreve um proxy na carga inicial do pool.
type ProxyEntry struct {
	URL       string
	Country   string
	IsDefault bool
}

func NewProxyPool(entries []ProxyEntry, failureLimit int) *ProxyPool {
	if failureLimit <= 0 {
		failureLimit = 3
	}

	pool := &ProxyPool{
		proxies:      make(map[string]*proxyState),
		failureLimit: failureLimit,
		now:          time.Now,
	}

	for _, entry := range entries {
		if entry.URL == "" {
			continue
		}
		if _, exists := pool.proxies[entry.URL]; exists {
			continue
		}
		pool.proxies[entry.URL] = &proxyState{
			url:       entry.URL,
			country:   entry.Country,
			isDefault: entry.IsDefault,
			enabled:   true,
		}
		pool.order = append(pool.order, entry.URL)
	}

	return pool
}

// Next escolhe o melhor proxy habilitado para o país alvo: primeiro os do
// país, depois qualquer habilitado, por último o proxy padrão. Entre
// candidatos, vale o menos usado recentemente; empates caem para o menor
// contador de falhas e depois para a ordem lexicográfica da URL. Retorna
// vazio quando o pool não tem nenhum proxy utilizável.
func (p *ProxyPool) Next(targetCountry string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetOldFailuresLocked()

	if best := p.pickLocked(func(s *proxyState) bool {
		return s.enabled && !s.isDefault && s.country == targetCountry
	}); best != nil {
		best.lastUsedAt = p.now()
		return best.url
	}

	if best := p.pickLocked(func(s *proxyState) bool {
		return s.enabled && !s.isDefault
	}); best != nil {
		best.lastUsedAt = p.now()
		return best.url
	}

	if best := p.pickLocked(func(s *proxyState) bool {
		return s.enabled && s.isDefault
	}); best != nil {
		best.lastUsedAt = p.now()
		return best.url
	}

	return ""
}

func (p *ProxyPool) pickLocked(eligible func(*proxyState) bool) *proxyState {
	var best *proxyState
	for _, url := range p.order {
		state := p.proxies[url]
		if !eligible(state) {
			continue
		}
		if best == nil || lessUsed(state, best) {
			best = state
		}
	}
	return best
}

func lessUsed(a, b *proxyState) bool {
	if !a.lastUsedAt.Equal(b.lastUsedAt) {
		return a.lastUsedAt.Before(b.lastUsedAt)
	}
	if a.failureCount != b.failureCount {
		return a.failureCount < b.failureCount
	}
	return a.url < b.url
}

// RecordSuccess zera progressivamente o contador de falhas do proxy.
func (p *ProxyPool) RecordSuccess(proxyURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.proxies[proxyURL]
	if !ok {
		return
	}

	state.successCount++
	if state.failureCount > 0 {
		state.failureCount--
	}
}

// RecordFailure incrementa o contador de falhas e desabilita o proxy quando
// o limite é atingido. Proxies desabilitados pelo administrador permanecem
// desabilitados.
func (p *ProxyPool) RecordFailure(proxyURL string, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.proxies[proxyURL]
	if !ok {
		return
	}

	state.failureCount++
	state.lastFailure = p.now()

	if state.enabled && state.failureCount >= p.failureLimit {
		state.enabled = false
		state.disabledBy = "auto"
		logrus.WithFields(logrus.Fields{
			"proxy":         proxyURL,
			"failure_count": state.failureCount,
			"reason":        reason,
		}).Warn("resolver: proxy disabled after consecutive failures")
	}
}

// resetOldFailuresLocked reabilita proxies auto-desabilitados cuja última
// falha já envelheceu o suficiente.
func (p *ProxyPool) resetOldFailuresLocked() {
	now := p.now()
	for _, state := range p.proxies {
		if state.enabled || state.disabledBy != "auto" {
			continue
		}
		if !state.lastFailure.IsZero() && now.Sub(state.lastFailure) > failureResetAfter {
			state.enabled = true
			state.disabledBy = ""
			state.failureCount = 0
			logrus.WithField("proxy", state.url).Info("resolver: proxy re-enabled after cooldown")
		}
	}
}

// Enable reabilita um proxy manualmente e zera seu contador de falhas.
func (p *ProxyPool) Enable(proxyURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.proxies[proxyURL]
	if !ok {
		return ErrProxyNotFound
	}

	state.enabled = true
	state.disabledBy = ""
	state.failureCount = 0
	return nil
}

// Disable desabilita um proxy manualmente; ele não volta sozinho.
func (p *ProxyPool) Disable(proxyURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.proxies[proxyURL]
	if !ok {
		return ErrProxyNotFound
	}

	state.enabled = false
	state.disabledBy = "admin"
	return nil
}

// Health retorna um snapshot do estado de todos os proxies, ordenado por URL.
func (p *ProxyPool) Health() []domain.ProxyHealth {
	p.mu.Lock()
	defer p.mu.Unlock()

	health := make([]domain.ProxyHealth, 0, len(p.proxies))
	for _, state := range p.proxies {
		entry := domain.ProxyHealth{
			URL:          state.url,
			Country:      state.country,
			Enabled:      state.enabled,
			FailureCount: state.failureCount,
			SuccessCount: state.successCount,
		}
		if !state.lastUsedAt.IsZero() {
			entry.LastUsedAt = state.lastUsedAt.Unix()
		}
		health = append(health, entry)
	}

	sort.Slice(health, func(i, j int) bool { return health[i].URL < health[j].URL })
	return health
}

// Size retorna o número de proxies carregados.
func (p *ProxyPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.proxies)
}
