package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	domain "github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
)

const (
	journalService     = "journal"
	useCaseRecordEntry = "journal.record_entry"
	useCaseListEntries = "journal.list_entries"
	statusAppend       = "JOURNAL_APPEND_FAILED"
	statusList         = "JOURNAL_LIST_FAILED"
	statusFlush        = "EVENT_FLUSH_FAILED"
)

// RecordEntryUseCase appends one audit entry, filling in id and time when
// the caller left them empty.
type RecordEntryUseCase struct {
	repo domain.Repository
	ids  application.IDGenerator
	inst application.Instrument
}

func NewRecordEntryUseCase(repo domain.Repository, ids application.IDGenerator, tel observability.Observability) *RecordEntryUseCase {
	return &RecordEntryUseCase{
		repo: repo,
		ids:  ids,
		inst: application.NewInstrument(journalService, tel),
	}
}

func (uc *RecordEntryUseCase) Execute(ctx context.Context, e domain.Entry) (_ *domain.Entry, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseRecordEntry, "RecordEntry",
		observability.F("kind", string(e.Kind)),
	)
	defer func() { run.End(err) }()

	if e.ID == "" {
		e.ID = uc.ids.NewID()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err = uc.repo.Append(ctx, e); err != nil {
		return nil, run.Fail(statusAppend, fmt.Errorf("journal: append: %w", err))
	}

	run.Set(observability.F("entry_id", e.ID))
	return &e, nil
}

// Flusher waits for in-flight events to be recorded.
type Flusher interface {
	Flush(ctx context.Context) error
}

type ListEntriesInput struct {
	Limit int
}

// ListEntriesUseCase reads the most recent entries, oldest first. With a
// Flusher it first waits for pending events so a just-finished operation
// shows up in the listing.
type ListEntriesUseCase struct {
	repo    domain.Repository
	flusher Flusher
	inst    application.Instrument
}

func NewListEntriesUseCase(repo domain.Repository, flusher Flusher, tel observability.Observability) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		repo:    repo,
		flusher: flusher,
		inst:    application.NewInstrument(journalService, tel),
	}
}

func (uc *ListEntriesUseCase) Execute(ctx context.Context, cmd ListEntriesInput) (_ []domain.Entry, err error) {
	ctx, run := uc.inst.Start(ctx, useCaseListEntries, "ListEntries",
		observability.F("limit", cmd.Limit),
	)
	defer func() { run.End(err) }()

	if uc.flusher != nil {
		if err = uc.flusher.Flush(ctx); err != nil {
			return nil, run.Fail(statusFlush, fmt.Errorf("journal: flush events: %w", err))
		}
	}

	entries, err := uc.repo.List(ctx, cmd.Limit)
	if err != nil {
		return nil, run.Fail(statusList, fmt.Errorf("journal: list: %w", err))
	}
	run.Set(observability.F("count", len(entries)))
	return entries, nil
}
