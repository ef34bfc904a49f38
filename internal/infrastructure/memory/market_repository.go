package memory

import (
	"context"
	"errors"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-market/internal/domain/market"
)

// MarketRepository keeps the single market of the process. Callers always work
// on a copy; nothing they do is visible until Save.
type MarketRepository struct {
	mu     sync.RWMutex
	market *domain.Market
}

func NewMarketRepository(m *domain.Market) *MarketRepository {
	return &MarketRepository{market: cloneMarket(m)}
}

func (r *MarketRepository) Load(ctx context.Context) (*domain.Market, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.market == nil {
		return nil, errors.New("market repository: market not initialised")
	}
	return cloneMarket(r.market), nil
}

func (r *MarketRepository) Save(ctx context.Context, m *domain.Market) error {
	_ = ctx
	if m == nil {
		return errors.New("market repository: market is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.market != nil && r.market.ID != m.ID {
		return errors.New("market repository: market id mismatch")
	}
	r.market = cloneMarket(m)
	return nil
}

func cloneMarket(m *domain.Market) *domain.Market {
	if m == nil {
		return nil
	}
	return m.Clone()
}
