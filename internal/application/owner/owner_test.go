package owner_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/Zhima-Mochi/minishop-market/internal/application/owner"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	domoutbox "github.com/Zhima-Mochi/minishop-market/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type capturePublisher struct {
	mu     sync.Mutex
	events []domoutbox.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type failingSaveRepo struct {
	*memory.MarketRepository
}

func (failingSaveRepo) Save(context.Context, *market.Market) error {
	return errors.New("disk full")
}

func newRepo() *memory.MarketRepository {
	return memory.NewMarketRepository(market.New("m-1", market.DefaultOpeningBalance, market.DefaultMargin))
}

func TestBuyFromWholesaler(t *testing.T) {
	ctx := context.Background()

	t.Run("DebitsAndRestocks", func(t *testing.T) {
		repo := newRepo()
		pub := &capturePublisher{}
		uc := owner.NewBuyFromWholesalerUseCase(repo, pub, nil, infraobs.Nop())

		res, err := uc.Execute(ctx, owner.BuyFromWholesalerInput{ProductName: "apple", WholesalePrice: dec("1.00"), Quantity: 100})
		require.NoError(t, err)
		require.Equal(t, "4900.00", res.MarketBalance.StringFixed(2))
		require.Equal(t, "1.20", res.SellPrice.StringFixed(2))
		require.Equal(t, 100, res.Stock)

		m, err := repo.Load(ctx)
		require.NoError(t, err)
		require.True(t, m.Balance.Equal(dec("4900")))

		require.Len(t, pub.events, 1)
		evt, ok := pub.events[0].(catalog.ProductRestockedEvent)
		require.True(t, ok)
		require.Equal(t, "apple", evt.ProductName)
		require.True(t, evt.Cost.Equal(dec("100")))
	})

	t.Run("InvalidInputChangesNothing", func(t *testing.T) {
		repo := newRepo()
		pub := &capturePublisher{}
		uc := owner.NewBuyFromWholesalerUseCase(repo, pub, nil, infraobs.Nop())

		_, err := uc.Execute(ctx, owner.BuyFromWholesalerInput{ProductName: "apple", WholesalePrice: dec("-1"), Quantity: 1})
		require.ErrorIs(t, err, catalog.ErrInvalidInput)

		m, _ := repo.Load(ctx)
		require.True(t, m.Balance.Equal(market.DefaultOpeningBalance))
		require.Zero(t, m.Catalog.Len())
		require.Empty(t, pub.events)
	})

	t.Run("SaveFailureIsReported", func(t *testing.T) {
		repo := failingSaveRepo{newRepo()}
		uc := owner.NewBuyFromWholesalerUseCase(repo, nil, nil, nil)

		_, err := uc.Execute(ctx, owner.BuyFromWholesalerInput{ProductName: "apple", WholesalePrice: dec("1"), Quantity: 1})
		require.ErrorContains(t, err, "disk full")

		m, _ := repo.Load(ctx)
		require.Zero(t, m.Catalog.Len())
	})

	t.Run("PublishFailureDoesNotUndoRestock", func(t *testing.T) {
		repo := newRepo()
		uc := owner.NewBuyFromWholesalerUseCase(repo, &capturePublisher{err: errors.New("bus down")}, nil, infraobs.Nop())

		_, err := uc.Execute(ctx, owner.BuyFromWholesalerInput{ProductName: "apple", WholesalePrice: dec("1"), Quantity: 1})
		require.NoError(t, err)

		m, _ := repo.Load(ctx)
		require.Equal(t, 1, m.Catalog.Len())
	})
}

func TestSetProfitMargin(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	pub := &capturePublisher{}
	lock := &sync.Mutex{}
	buy := owner.NewBuyFromWholesalerUseCase(repo, pub, lock, infraobs.Nop())
	setMargin := owner.NewSetProfitMarginUseCase(repo, pub, lock, infraobs.Nop())
	list := owner.NewListProductsUseCase(repo, infraobs.Nop())

	for _, in := range []owner.BuyFromWholesalerInput{
		{ProductName: "apple", WholesalePrice: dec("1.00"), Quantity: 100},
		{ProductName: "melon", WholesalePrice: dec("3.10"), Quantity: 4},
	} {
		_, err := buy.Execute(ctx, in)
		require.NoError(t, err)
	}

	res, err := setMargin.Execute(ctx, owner.SetProfitMarginInput{Margin: dec("0.5")})
	require.NoError(t, err)
	require.Equal(t, 2, res.Repriced)

	listed, err := list.Execute(ctx, owner.ListProductsInput{})
	require.NoError(t, err)
	require.True(t, listed.Margin.Equal(dec("0.5")))

	m, _ := repo.Load(ctx)
	for l := range listed.Products {
		p, ok := m.Catalog.Lookup(l.Name)
		require.True(t, ok)
		require.True(t, l.SellPrice.Equal(p.WholesalePrice.Mul(dec("1.5"))), l.Name)
	}

	require.Len(t, pub.events, 3)
	_, ok := pub.events[2].(catalog.MarginUpdatedEvent)
	require.True(t, ok)
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyCatalog", func(t *testing.T) {
		res, err := owner.NewListProductsUseCase(newRepo(), nil).Execute(ctx, owner.ListProductsInput{})
		require.NoError(t, err)
		require.True(t, res.Empty())
		require.Empty(t, slices.Collect(res.Products))
		require.Equal(t, "5000.00", res.MarketBalance.StringFixed(2))
	})

	t.Run("SnapshotInInsertionOrder", func(t *testing.T) {
		repo := newRepo()
		buy := owner.NewBuyFromWholesalerUseCase(repo, nil, nil, nil)
		for _, name := range []string{"tea", "coffee", "cocoa"} {
			_, err := buy.Execute(ctx, owner.BuyFromWholesalerInput{ProductName: name, WholesalePrice: dec("2"), Quantity: 1})
			require.NoError(t, err)
		}

		res, err := owner.NewListProductsUseCase(repo, nil).Execute(ctx, owner.ListProductsInput{})
		require.NoError(t, err)

		_, err = buy.Execute(ctx, owner.BuyFromWholesalerInput{ProductName: "juice", WholesalePrice: dec("2"), Quantity: 1})
		require.NoError(t, err)

		var names []string
		for l := range res.Products {
			names = append(names, l.Name)
		}
		require.Equal(t, []string{"tea", "coffee", "cocoa"}, names)
	})
}
