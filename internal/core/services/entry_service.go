package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	portsrepo "github.com/groupsoftware/minhasfinancas/internal/core/ports/repositories"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// entryService orchestrates the lifecycle of financial entries: validation,
// persistence, status changes and balance aggregation.
type entryService struct {
	entryRepo portsrepo.EntryRepositoryFacade
}

// NewEntryService creates a new entry service backed by the given repository.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade) portssvc.EntrySvcFacade {
	return &entryService{entryRepo: entryRepo}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// CreateEntry validates and persists a new entry. The repository is not
// called when validation fails.
func (s *entryService) CreateEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	if err := ValidateEntry(entry); err != nil {
		return nil, err
	}

	now := time.Now()
	entry.EntryID = uuid.NewString()
	entry.RegistrationDate = now
	entry.LastUpdatedAt = now
	if entry.Status == "" {
		entry.Status = domain.StatusPending
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry revalidates and persists an existing entry. An entry without
// an ID is a caller error and is rejected before any storage call.
func (s *entryService) UpdateEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	if entry.EntryID == "" {
		return nil, apperrors.ErrMissingEntryID
	}
	if err := ValidateEntry(entry); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = time.Now()
	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	return &entry, nil
}

// ChangeEntryStatus sets the status from its raw string form and delegates
// to UpdateEntry, so a status change never bypasses full revalidation.
func (s *entryService) ChangeEntryStatus(ctx context.Context, entry domain.Entry, rawStatus string) (*domain.Entry, error) {
	status, err := domain.ParseEntryStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	entry.Status = status
	return s.UpdateEntry(ctx, entry)
}

// DeleteEntry removes a persisted entry. Deletion has no business rules
// beyond identity, so validation is not re-run.
func (s *entryService) DeleteEntry(ctx context.Context, entry domain.Entry) error {
	if entry.EntryID == "" {
		return apperrors.ErrMissingEntryID
	}
	if err := s.entryRepo.DeleteEntry(ctx, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// SearchEntries lists entries matching the filter for the filter's owner.
func (s *entryService) SearchEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if filter.OwnerID == "" {
		return nil, apperrors.ErrMissingOwner
	}
	entries, err := s.entryRepo.FindEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, nil
}

// BalanceForUser computes income minus expense over all of the user's
// entries. CANCELED entries count as well; the aggregation is status-blind.
func (s *entryService) BalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	income, err := s.entryRepo.SumByOwnerAndType(ctx, userID, domain.Income)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income for user %s: %w", userID, err)
	}
	expense, err := s.entryRepo.SumByOwnerAndType(ctx, userID, domain.Expense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expense for user %s: %w", userID, err)
	}
	return income.Sub(expense), nil
}
