package ports

import (
	"context"

	"github.com/lenshive/admin-console/internal/core/domain"
)

// JournalRepository persists the activity journal.
type JournalRepository interface {
	Insert(ctx context.Context, entry *domain.JournalEntry) error
	Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}

// Journal is what controllers write to. Implementations must not block the
// caller on storage latency.
type Journal interface {
	Record(entry domain.JournalEntry)
	Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}
