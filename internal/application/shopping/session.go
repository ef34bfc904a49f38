package shopping

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/shopspring/decimal"
)

const (
	shoppingService     = "shopping"
	useCaseStartSession = "customer.start_session"
	useCaseGetSession   = "customer.get_session"
	useCaseEndSession   = "customer.end_session"
	useCaseFindProduct  = "customer.find_product"
	useCaseAddToCart    = "customer.add_to_cart"
	useCaseCheckout     = "customer.checkout"
	statusRejected      = "REJECTED"
	statusSessionLookup = "SESSION_LOOKUP_FAILED"
	statusSessionSave   = "SESSION_SAVE_FAILED"
	statusMarketLoad    = "MARKET_LOAD_FAILED"
	statusMarketSave    = "MARKET_SAVE_FAILED"
)

type StartSessionInput struct{}

type SessionResult struct {
	CustomerID string
	Balance    decimal.Decimal
	CartLines  int
}

// StartSessionUseCase opens a shopping session with a fresh balance and an empty cart.
type StartSessionUseCase struct {
	repo           customer.Repository
	ids            application.IDGenerator
	openingBalance decimal.Decimal
	inst           application.Instrument
}

func NewStartSessionUseCase(
	repo customer.Repository,
	ids application.IDGenerator,
	openingBalance decimal.Decimal,
	tel observability.Observability,
) *StartSessionUseCase {
	return &StartSessionUseCase{
		repo:           repo,
		ids:            ids,
		openingBalance: openingBalance,
		inst:           application.NewInstrument(shoppingService, tel),
	}
}

func (uc *StartSessionUseCase) Execute(ctx context.Context, _ StartSessionInput) (_ *SessionResult, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseStartSession, "StartSession")
	defer func() { run.End(err) }()

	c := customer.New(uc.ids.NewID(), uc.openingBalance)
	if err = uc.repo.Insert(ctx, c); err != nil {
		return nil, run.Fail(statusSessionSave, fmt.Errorf("shopping: start session: %w", err))
	}

	run.Set(observability.F("customer_id", c.ID), observability.F("balance", c.Balance))
	return &SessionResult{CustomerID: c.ID, Balance: c.Balance}, nil
}

type GetSessionInput struct {
	CustomerID string
}

type GetSessionUseCase struct {
	repo customer.Repository
	inst application.Instrument
}

func NewGetSessionUseCase(repo customer.Repository, tel observability.Observability) *GetSessionUseCase {
	return &GetSessionUseCase{
		repo: repo,
		inst: application.NewInstrument(shoppingService, tel),
	}
}

func (uc *GetSessionUseCase) Execute(ctx context.Context, cmd GetSessionInput) (_ *SessionResult, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseGetSession, "GetSession",
		observability.F("customer_id", cmd.CustomerID),
	)
	defer func() { run.End(err) }()

	c, err := uc.repo.Get(ctx, cmd.CustomerID)
	if err != nil {
		return nil, run.Fail(statusSessionLookup, fmt.Errorf("shopping: get session: %w", err))
	}
	return &SessionResult{CustomerID: c.ID, Balance: c.Balance, CartLines: c.Cart.Len()}, nil
}

type EndSessionInput struct {
	CustomerID string
}

// EndSessionUseCase drops the session; its cart is not kept.
type EndSessionUseCase struct {
	repo customer.Repository
	inst application.Instrument
}

func NewEndSessionUseCase(repo customer.Repository, tel observability.Observability) *EndSessionUseCase {
	return &EndSessionUseCase{
		repo: repo,
		inst: application.NewInstrument(shoppingService, tel),
	}
}

func (uc *EndSessionUseCase) Execute(ctx context.Context, cmd EndSessionInput) (_ *SessionResult, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseEndSession, "EndSession",
		observability.F("customer_id", cmd.CustomerID),
	)
	defer func() { run.End(err) }()

	c, err := uc.repo.Get(ctx, cmd.CustomerID)
	if err != nil {
		return nil, run.Fail(statusSessionLookup, fmt.Errorf("shopping: end session: %w", err))
	}
	if err = uc.repo.Delete(ctx, c.ID); err != nil {
		return nil, run.Fail(statusSessionSave, fmt.Errorf("shopping: end session: %w", err))
	}

	run.Set(observability.F("balance", c.Balance), observability.F("cart_lines", c.Cart.Len()))
	return &SessionResult{CustomerID: c.ID, Balance: c.Balance, CartLines: c.Cart.Len()}, nil
}
