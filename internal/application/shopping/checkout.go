package shopping

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	domoutbox "github.com/Zhima-Mochi/minishop-market/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
)

type CheckoutInput struct {
	CustomerID string
}

// CheckoutUseCase reports the cart at current prices. It moves no money and
// leaves the cart as it is; ending the session is the caller's decision.
type CheckoutUseCase struct {
	markets   market.Repository
	customers customer.Repository
	publisher domoutbox.Publisher
	inst      application.Instrument
}

func NewCheckoutUseCase(
	markets market.Repository,
	customers customer.Repository,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *CheckoutUseCase {
	if publisher == nil {
		publisher = domoutbox.NopPublisher()
	}
	return &CheckoutUseCase{
		markets:   markets,
		customers: customers,
		publisher: publisher,
		inst:      application.NewInstrument(shoppingService, tel),
	}
}

func (uc *CheckoutUseCase) Execute(ctx context.Context, cmd CheckoutInput) (_ *customer.Receipt, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseCheckout, "Checkout",
		observability.F("customer_id", cmd.CustomerID),
	)
	defer func() { run.End(err) }()

	c, err := uc.customers.Get(ctx, cmd.CustomerID)
	if err != nil {
		return nil, run.Fail(statusSessionLookup, fmt.Errorf("shopping: get session: %w", err))
	}
	m, err := uc.markets.Load(ctx)
	if err != nil {
		return nil, run.Fail(statusMarketLoad, fmt.Errorf("shopping: load market: %w", err))
	}

	receipt := customer.Checkout(m, c)
	if receipt.Empty {
		run.Status("EMPTY_CART")
		return receipt, nil
	}

	run.Set(
		observability.F("lines", len(receipt.Lines)),
		observability.F("total", receipt.Total),
		observability.F("remaining_balance", receipt.RemainingBalance),
	)
	run.Publish(ctx, uc.publisher, customer.NewCheckoutCompletedEvent(c.ID, receipt))
	return receipt, nil
}
