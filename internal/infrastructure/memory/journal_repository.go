package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
)

type JournalRepository struct {
	mu      sync.RWMutex
	entries []domain.Entry
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{}
}

func (r *JournalRepository) Append(ctx context.Context, e domain.Entry) error {
	_ = ctx
	if e.ID == "" {
		return fmt.Errorf("journal repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	return nil
}

func (r *JournalRepository) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.entries
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return append([]domain.Entry(nil), entries...), nil
}
