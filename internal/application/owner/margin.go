package owner

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	domoutbox "github.com/Zhima-Mochi/minishop-market/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/shopspring/decimal"
)

type SetProfitMarginInput struct {
	Margin decimal.Decimal
}

type SetProfitMarginResult struct {
	Margin   decimal.Decimal
	Repriced int
}

// SetProfitMarginUseCase changes the catalog-wide margin and reprices every product.
type SetProfitMarginUseCase struct {
	repo      market.Repository
	publisher domoutbox.Publisher
	txLock    sync.Locker
	inst      application.Instrument
}

func NewSetProfitMarginUseCase(
	repo market.Repository,
	publisher domoutbox.Publisher,
	txLock sync.Locker,
	tel observability.Observability,
) *SetProfitMarginUseCase {
	if publisher == nil {
		publisher = domoutbox.NopPublisher()
	}
	if txLock == nil {
		txLock = &sync.Mutex{}
	}
	return &SetProfitMarginUseCase{
		repo:      repo,
		publisher: publisher,
		txLock:    txLock,
		inst:      application.NewInstrument(ownerService, tel),
	}
}

func (uc *SetProfitMarginUseCase) Execute(ctx context.Context, cmd SetProfitMarginInput) (_ *SetProfitMarginResult, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseSetMargin, "SetProfitMargin",
		observability.F("margin", cmd.Margin),
	)
	defer func() { run.End(err) }()

	uc.txLock.Lock()
	defer uc.txLock.Unlock()

	m, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, run.Fail(statusMarketLoad, fmt.Errorf("owner: load market: %w", err))
	}

	m.SetProfitMargin(cmd.Margin)

	if err = uc.repo.Save(ctx, m); err != nil {
		return nil, run.Fail(statusMarketSave, fmt.Errorf("owner: save market: %w", err))
	}

	repriced := m.Catalog.Len()
	run.Set(observability.F("repriced", repriced))
	run.Publish(ctx, uc.publisher, catalog.NewMarginUpdatedEvent(m.Margin, repriced))

	return &SetProfitMarginResult{Margin: m.Margin, Repriced: repriced}, nil
}
