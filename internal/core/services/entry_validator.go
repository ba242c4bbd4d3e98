package services

import (
	"strings"

	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
)

// ValidateEntry checks the business rules for a financial entry and returns
// the first violated rule. The evaluation order is part of the contract:
// description, month, year, owner, value, type. The function is pure and
// knows nothing about persistence.
func ValidateEntry(entry domain.Entry) error {
	if strings.TrimSpace(entry.Description) == "" {
		return apperrors.ErrInvalidDescription
	}
	if entry.Month < 1 || entry.Month > 12 {
		return apperrors.ErrInvalidMonth
	}
	if entry.Year < 1000 || entry.Year > 9999 {
		return apperrors.ErrInvalidYear
	}
	if entry.OwnerID == "" {
		return apperrors.ErrMissingOwner
	}
	if !entry.Value.IsPositive() {
		return apperrors.ErrInvalidValue
	}
	if entry.Type != domain.Income && entry.Type != domain.Expense {
		return apperrors.ErrMissingType
	}
	return nil
}
