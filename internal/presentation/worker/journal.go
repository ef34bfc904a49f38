package workerpresentation

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
	domoutbox "github.com/Zhima-Mochi/minishop-market/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
)

const componentJournal = "journal_worker"

// JournalWorker turns market and customer events into journal entries.
type JournalWorker struct {
	subscriber domoutbox.Subscriber
	record     application.UseCase[journal.Entry, *journal.Entry]
	log        observability.Logger
	handled    observability.Counter // events_handled_total{event,outcome}
}

func NewJournalWorker(
	subscriber domoutbox.Subscriber,
	record application.UseCase[journal.Entry, *journal.Entry],
	tel observability.Observability,
) *JournalWorker {
	log := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		log = tel.Logger()
		metrics = tel.Metrics()
	}
	return &JournalWorker{
		subscriber: subscriber,
		record:     record,
		log:        log.With(observability.F("component", componentJournal)),
		handled:    metrics.Counter(observability.MEventsHandled),
	}
}

func (w *JournalWorker) Start() {
	if w.subscriber == nil || w.record == nil {
		return
	}
	w.subscriber.Subscribe(catalog.ProductRestockedEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(catalog.MarginUpdatedEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(customer.ItemAddedToCartEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(customer.CheckoutCompletedEvent{}.EventName(), w.handle)
}

func (w *JournalWorker) handle(ctx context.Context, e domoutbox.Event) error {
	name := e.EventName()
	entry, ok := entryFor(e)
	if !ok {
		w.handled.Add(1, observability.L("event", name), observability.L("outcome", "ignored"))
		return nil
	}

	ctx, logger := WithEventContext(ctx, w.log, name, map[string]string{
		"kind":        string(entry.Kind),
		"customer_id": entry.CustomerID,
	})

	recorded, err := w.record.Execute(ctx, entry)
	if err != nil {
		w.handled.Add(1, observability.L("event", name), observability.L("outcome", "error"))
		logger.Warn("journal_entry_failed", observability.F("error", err))
		return fmt.Errorf("journal worker: record %s: %w", name, err)
	}

	w.handled.Add(1, observability.L("event", name), observability.L("outcome", "success"))
	logger.Debug("journal_entry_recorded", observability.F("entry_id", recorded.ID))
	return nil
}

func entryFor(e domoutbox.Event) (journal.Entry, bool) {
	switch evt := e.(type) {
	case catalog.ProductRestockedEvent:
		return journal.Entry{
			Kind:          journal.KindRestock,
			ProductName:   evt.ProductName,
			Quantity:      evt.Quantity,
			Amount:        evt.Cost,
			MarketBalance: evt.MarketBalance,
			OccurredAt:    evt.OccurredAt,
		}, true
	case catalog.MarginUpdatedEvent:
		return journal.Entry{
			Kind:       journal.KindMarginChange,
			Quantity:   evt.Repriced,
			Margin:     evt.Margin,
			OccurredAt: evt.OccurredAt,
		}, true
	case customer.ItemAddedToCartEvent:
		return journal.Entry{
			Kind:          journal.KindSale,
			ProductName:   evt.ProductName,
			CustomerID:    evt.CustomerID,
			Quantity:      evt.Quantity,
			Amount:        evt.Cost,
			MarketBalance: evt.MarketBalance,
			OccurredAt:    evt.OccurredAt,
		}, true
	case customer.CheckoutCompletedEvent:
		return journal.Entry{
			Kind:       journal.KindCheckout,
			CustomerID: evt.CustomerID,
			Quantity:   evt.Lines,
			Amount:     evt.Total,
			OccurredAt: evt.OccurredAt,
		}, true
	default:
		return journal.Entry{}, false
	}
}
