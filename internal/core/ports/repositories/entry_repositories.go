package repositories

import (
	"context"

	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for financial entries
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindEntries retrieves all entries matching the non-zero filter fields
	// for the filter's owner. Result order is the storage's natural order.
	FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)

	// SumByOwnerAndType sums the value of all of an owner's entries of the
	// given type, regardless of status. Returns zero when there are none.
	SumByOwnerAndType(ctx context.Context, ownerID string, entryType domain.EntryType) (decimal.Decimal, error)
}

// EntryWriter defines write operations for financial entries
type EntryWriter interface {
	// SaveEntry persists an entry, inserting or updating by its ID.
	// Owner and registration date are never changed on update.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// DeleteEntry removes an entry by its ID.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
