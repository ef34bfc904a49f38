package shopping

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	domoutbox "github.com/Zhima-Mochi/minishop-market/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

type FindProductInput struct {
	ProductName string
}

// FindProductUseCase answers "can this product be bought at all" so a caller
// can report a missing or sold-out product before asking for a quantity.
type FindProductUseCase struct {
	repo market.Repository
	inst application.Instrument
}

func NewFindProductUseCase(repo market.Repository, tel observability.Observability) *FindProductUseCase {
	return &FindProductUseCase{
		repo: repo,
		inst: application.NewInstrument(shoppingService, tel),
	}
}

func (uc *FindProductUseCase) Execute(ctx context.Context, cmd FindProductInput) (_ *catalog.Listing, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseFindProduct, "FindProduct",
		observability.F("product", cmd.ProductName),
	)
	defer func() { run.End(err) }()

	m, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, run.Fail(statusMarketLoad, fmt.Errorf("shopping: load market: %w", err))
	}

	p, err := customer.FindProduct(m, cmd.ProductName)
	if err != nil {
		return nil, run.Fail(statusRejected, err)
	}
	return &catalog.Listing{Name: p.Name, Stock: p.Stock, SellPrice: p.SellPrice}, nil
}

type AddToCartInput struct {
	CustomerID  string
	ProductName string
	Quantity    int
}

// AddToCartUseCase moves stock to the cart and money to the market. Both
// repositories end up updated or neither does.
type AddToCartUseCase struct {
	markets    market.Repository
	customers  customer.Repository
	publisher  domoutbox.Publisher
	txLock     sync.Locker
	inst       application.Instrument
	salesTotal observability.Counter // sales_amount_total
}

func NewAddToCartUseCase(
	markets market.Repository,
	customers customer.Repository,
	publisher domoutbox.Publisher,
	txLock sync.Locker,
	tel observability.Observability,
) *AddToCartUseCase {
	if publisher == nil {
		publisher = domoutbox.NopPublisher()
	}
	if txLock == nil {
		txLock = &sync.Mutex{}
	}
	inst := application.NewInstrument(shoppingService, tel)
	return &AddToCartUseCase{
		markets:    markets,
		customers:  customers,
		publisher:  publisher,
		txLock:     txLock,
		inst:       inst,
		salesTotal: inst.Counter(observability.MSalesAmount),
	}
}

func (uc *AddToCartUseCase) Execute(ctx context.Context, cmd AddToCartInput) (_ *customer.Purchase, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseAddToCart, "AddToCart",
		observability.F("customer_id", cmd.CustomerID),
		observability.F("product", cmd.ProductName),
		observability.F("quantity", cmd.Quantity),
	)
	defer func() { run.End(err) }()

	uc.txLock.Lock()
	defer uc.txLock.Unlock()

	c, err := uc.customers.Get(ctx, cmd.CustomerID)
	if err != nil {
		return nil, run.Fail(statusSessionLookup, fmt.Errorf("shopping: get session: %w", err))
	}
	m, err := uc.markets.Load(ctx)
	if err != nil {
		return nil, run.Fail(statusMarketLoad, fmt.Errorf("shopping: load market: %w", err))
	}
	before := m.Clone()

	purchase, err := customer.AddToCart(m, c, cmd.ProductName, cmd.Quantity)
	if err != nil {
		return nil, run.Fail(statusRejected, err)
	}

	if err = uc.markets.Save(ctx, m); err != nil {
		return nil, run.Fail(statusMarketSave, fmt.Errorf("shopping: save market: %w", err))
	}
	if err = uc.customers.Update(ctx, c); err != nil {
		if rbErr := uc.markets.Save(ctx, before); rbErr != nil {
			run.Set(observability.F("rollback_error", rbErr.Error()))
		}
		return nil, run.Fail(statusSessionSave, fmt.Errorf("shopping: save session: %w", err))
	}

	uc.salesTotal.Add(purchase.Cost.InexactFloat64())
	run.AddEvent("cart.item_added",
		attribute.String("product.name", purchase.ProductName),
		attribute.Int("cart.quantity", purchase.Quantity),
	)
	run.Set(
		observability.F("cost", purchase.Cost),
		observability.F("customer_balance", purchase.CustomerBalance),
		observability.F("market_balance", purchase.MarketBalance),
	)
	run.Publish(ctx, uc.publisher, customer.NewItemAddedToCartEvent(c.ID, purchase))

	return purchase, nil
}
