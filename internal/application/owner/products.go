package owner

import (
	"context"
	"fmt"
	"iter"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/shopspring/decimal"
)

type ListProductsInput struct{}

// ListProductsResult is a snapshot: later restocks or sales do not show up in
// Products once the result has been returned.
type ListProductsResult struct {
	MarketBalance decimal.Decimal
	Margin        decimal.Decimal
	Count         int
	Products      iter.Seq[catalog.Listing]
}

// Empty reports an empty catalog, which callers show as "no products" rather than an error.
func (r *ListProductsResult) Empty() bool { return r.Count == 0 }

type ListProductsUseCase struct {
	repo market.Repository
	inst application.Instrument
}

func NewListProductsUseCase(repo market.Repository, tel observability.Observability) *ListProductsUseCase {
	return &ListProductsUseCase{
		repo: repo,
		inst: application.NewInstrument(ownerService, tel),
	}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, _ ListProductsInput) (_ *ListProductsResult, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseListProducts, "ListProducts")
	defer func() { run.End(err) }()

	m, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, run.Fail(statusMarketLoad, fmt.Errorf("owner: load market: %w", err))
	}

	run.Set(observability.F("count", m.Catalog.Len()))
	return &ListProductsResult{
		MarketBalance: m.Balance,
		Margin:        m.Margin,
		Count:         m.Catalog.Len(),
		Products:      m.Catalog.Products(),
	}, nil
}
