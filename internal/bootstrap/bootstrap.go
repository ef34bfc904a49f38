// Package bootstrap assembles the repositories, event bus, observability
// provider and use cases of one market process.
package bootstrap

import (
	"context"
	"sync"

	appjournal "github.com/Zhima-Mochi/minishop-market/internal/application/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/application/owner"
	"github.com/Zhima-Mochi/minishop-market/internal/application/shopping"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/config"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	httppresentation "github.com/Zhima-Mochi/minishop-market/internal/presentation/http"
	"github.com/Zhima-Mochi/minishop-market/internal/presentation/menu"
	workerpresentation "github.com/Zhima-Mochi/minishop-market/internal/presentation/worker"
	"go.uber.org/zap"
)

const metricsNamespace = "minishop"

// App is a wired market. Start the bus before use and Close it when done.
type App struct {
	Config    config.Config
	Tel       observability.Observability
	Registry  prometrics.Registry
	Bus       *outbox.Bus
	Markets   *memory.MarketRepository
	Customers *memory.CustomerRepository
	Journal   *memory.JournalRepository
	Owner     menu.OwnerUseCases
	Shopping  menu.ShoppingUseCases
}

// New wires every component. A nil zap logger discards logs.
func New(cfg config.Config, zl *zap.Logger) *App {
	if zl == nil {
		zl = zap.NewNop()
	}
	logger := zaplogger.New(zl)

	reg := prometrics.New(metricsNamespace, "")
	counters, histograms := infraobs.RegisterMetrics(reg)
	tel := infraobs.New(infraobs.NewTracer(cfg.ServiceName), logger, counters, histograms)

	ids := id.NewUUIDGenerator()
	bus := outbox.NewBus(logger)
	markets := memory.NewMarketRepository(market.New(ids.NewID(), cfg.MarketOpeningBalance, cfg.DefaultMargin))
	customers := memory.NewCustomerRepository()
	journalRepo := memory.NewJournalRepository()

	// One lock for every mutating use case: each operation is atomic as a whole.
	txLock := &sync.Mutex{}

	record := appjournal.NewRecordEntryUseCase(journalRepo, ids, tel)
	workerpresentation.NewJournalWorker(bus, record, tel).Start()

	return &App{
		Config:    cfg,
		Tel:       tel,
		Registry:  reg,
		Bus:       bus,
		Markets:   markets,
		Customers: customers,
		Journal:   journalRepo,
		Owner: menu.OwnerUseCases{
			Buy:      owner.NewBuyFromWholesalerUseCase(markets, bus, txLock, tel),
			Margin:   owner.NewSetProfitMarginUseCase(markets, bus, txLock, tel),
			Products: owner.NewListProductsUseCase(markets, tel),
			Journal:  appjournal.NewListEntriesUseCase(journalRepo, bus, tel),
		},
		Shopping: menu.ShoppingUseCases{
			Start:    shopping.NewStartSessionUseCase(customers, ids, cfg.CustomerOpeningBalance, tel),
			Session:  shopping.NewGetSessionUseCase(customers, tel),
			Find:     shopping.NewFindProductUseCase(markets, tel),
			Add:      shopping.NewAddToCartUseCase(markets, customers, bus, txLock, tel),
			Checkout: shopping.NewCheckoutUseCase(markets, customers, bus, tel),
			End:      shopping.NewEndSessionUseCase(customers, tel),
		},
	}
}

// Start runs the event bus. The bus ignores cancellation of ctx so a signal
// does not strand events; Close drains and stops it.
func (a *App) Start(ctx context.Context) {
	a.Bus.Start(context.WithoutCancel(ctx))
}

// Close drains queued events into the journal and stops the bus.
func (a *App) Close(ctx context.Context) {
	_ = a.Bus.Flush(ctx)
	a.Bus.Stop(ctx)
}

// OpsHandler serves /metrics, /health, /products and /journal.
func (a *App) OpsHandler() *httppresentation.Handler {
	return httppresentation.NewHandler(a.Owner.Products, a.Owner.Journal, a.Registry.Gatherer(), a.Tel.Logger(), a.Tel)
}
