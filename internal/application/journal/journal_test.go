package journal_test

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-market/internal/application/journal"
	domain "github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type flushFunc func(context.Context) error

func (f flushFunc) Flush(ctx context.Context) error { return f(ctx) }

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewJournalRepository()
	record := journal.NewRecordEntryUseCase(repo, id.NewUUIDGenerator(), infraobs.Nop())

	for _, name := range []string{"apple", "pear", "plum"} {
		e, err := record.Execute(ctx, domain.Entry{Kind: domain.KindRestock, ProductName: name, Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)
		require.NotEmpty(t, e.ID)
		require.False(t, e.OccurredAt.IsZero())
	}

	flushed := false
	list := journal.NewListEntriesUseCase(repo, flushFunc(func(context.Context) error {
		flushed = true
		return nil
	}), infraobs.Nop())

	entries, err := list.Execute(ctx, journal.ListEntriesInput{Limit: 2})
	require.NoError(t, err)
	require.True(t, flushed)
	require.Len(t, entries, 2)
	require.Equal(t, "pear", entries[0].ProductName)
	require.Equal(t, "plum", entries[1].ProductName)

	all, err := list.Execute(ctx, journal.ListEntriesInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestListEntriesFlushFailure(t *testing.T) {
	list := journal.NewListEntriesUseCase(memory.NewJournalRepository(), flushFunc(func(context.Context) error {
		return context.DeadlineExceeded
	}), infraobs.Nop())

	_, err := list.Execute(context.Background(), journal.ListEntriesInput{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
