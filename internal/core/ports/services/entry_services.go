package services

import (
	"context"

	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReaderSvc defines read operations for financial entries
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry by ID.
	GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// SearchEntries lists the entries matching the filter. The filter's
	// OwnerID is required; other fields are wildcards when zero-valued.
	SearchEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)

	// BalanceForUser computes the user's net balance: the sum of INCOME
	// values minus the sum of EXPENSE values, across every status.
	BalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error)
}

// EntryWriterSvc defines write operations for financial entries
type EntryWriterSvc interface {
	// CreateEntry validates and persists a new entry. Status defaults to
	// PENDING. Storage is not touched when validation fails.
	CreateEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error)

	// UpdateEntry revalidates and persists an existing entry. Fails with
	// apperrors.ErrMissingEntryID when the entry has no ID.
	UpdateEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error)

	// ChangeEntryStatus sets the entry's status from a raw string and then
	// delegates to UpdateEntry, so the whole entry is revalidated. Fails
	// with apperrors.ErrInvalidStatus for unrecognized values.
	ChangeEntryStatus(ctx context.Context, entry domain.Entry, rawStatus string) (*domain.Entry, error)

	// DeleteEntry removes a persisted entry. Same ID precondition as
	// UpdateEntry; no business validation is re-run.
	DeleteEntry(ctx context.Context, entry domain.Entry) error
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
