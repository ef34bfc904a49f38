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

	"go.opentelemetry.io/otel/attribute"
)

const (
	ownerService        = "market-owner"
	useCaseBuyWholesale = "market.buy_from_wholesaler"
	useCaseSetMargin    = "market.set_profit_margin"
	useCaseListProducts = "catalog.list_products"
	statusInvalidInput  = "INVALID_INPUT"
	statusMarketLoad    = "MARKET_LOAD_FAILED"
	statusMarketSave    = "MARKET_SAVE_FAILED"
)

type BuyFromWholesalerInput struct {
	ProductName    string
	WholesalePrice decimal.Decimal
	Quantity       int
}

type BuyFromWholesalerResult struct {
	ProductName    string
	Quantity       int
	Stock          int
	WholesalePrice decimal.Decimal
	SellPrice      decimal.Decimal
	Cost           decimal.Decimal
	MarketBalance  decimal.Decimal
}

// BuyFromWholesalerUseCase debits the market and restocks a product in one step.
type BuyFromWholesalerUseCase struct {
	repo      market.Repository
	publisher domoutbox.Publisher
	txLock    sync.Locker
	inst      application.Instrument
	costTotal observability.Counter // restock_cost_total
}

func NewBuyFromWholesalerUseCase(
	repo market.Repository,
	publisher domoutbox.Publisher,
	txLock sync.Locker,
	tel observability.Observability,
) *BuyFromWholesalerUseCase {
	if publisher == nil {
		publisher = domoutbox.NopPublisher()
	}
	if txLock == nil {
		txLock = &sync.Mutex{}
	}
	inst := application.NewInstrument(ownerService, tel)
	return &BuyFromWholesalerUseCase{
		repo:      repo,
		publisher: publisher,
		txLock:    txLock,
		inst:      inst,
		costTotal: inst.Counter(observability.MRestockCost),
	}
}

func (uc *BuyFromWholesalerUseCase) Execute(ctx context.Context, cmd BuyFromWholesalerInput) (_ *BuyFromWholesalerResult, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseBuyWholesale, "BuyFromWholesaler",
		observability.F("product", cmd.ProductName),
		observability.F("wholesale_price", cmd.WholesalePrice),
		observability.F("quantity", cmd.Quantity),
	)
	defer func() { run.End(err) }()

	uc.txLock.Lock()
	defer uc.txLock.Unlock()

	m, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, run.Fail(statusMarketLoad, fmt.Errorf("owner: load market: %w", err))
	}

	p, cost, err := m.BuyFromWholesaler(cmd.ProductName, cmd.WholesalePrice, cmd.Quantity)
	if err != nil {
		return nil, run.Fail(statusInvalidInput, err)
	}

	if err = uc.repo.Save(ctx, m); err != nil {
		return nil, run.Fail(statusMarketSave, fmt.Errorf("owner: save market: %w", err))
	}

	uc.costTotal.Add(cost.InexactFloat64())
	run.AddEvent("catalog.restocked",
		attribute.String("product.name", p.Name),
		attribute.Int("product.stock", p.Stock),
	)
	run.Set(
		observability.F("cost", cost),
		observability.F("market_balance", m.Balance),
		observability.F("stock", p.Stock),
	)
	run.Publish(ctx, uc.publisher, catalog.NewProductRestockedEvent(p, cmd.Quantity, cost, m.Balance))

	return &BuyFromWholesalerResult{
		ProductName:    p.Name,
		Quantity:       cmd.Quantity,
		Stock:          p.Stock,
		WholesalePrice: p.WholesalePrice,
		SellPrice:      p.SellPrice,
		Cost:           cost,
		MarketBalance:  m.Balance,
	}, nil
}
