package domain

import (
	"time"

	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry is money coming in or going out.
type EntryType string

const (
	Income  EntryType = "INCOME"
	Expense EntryType = "EXPENSE"
)

// EntryStatus is the lifecycle tag of an entry. Any status may move to any
// other status; only membership is checked, there is no transition graph.
type EntryStatus string

const (
	StatusPending  EntryStatus = "PENDING"
	StatusSettled  EntryStatus = "SETTLED"
	StatusCanceled EntryStatus = "CANCELED"
)

// ParseEntryType maps a raw string onto an EntryType.
func ParseEntryType(raw string) (EntryType, error) {
	switch EntryType(raw) {
	case Income, Expense:
		return EntryType(raw), nil
	}
	return "", apperrors.ErrMissingType
}

// ParseEntryStatus maps a raw string onto an EntryStatus, failing for
// anything outside the recognized set.
func ParseEntryStatus(raw string) (EntryStatus, error) {
	switch EntryStatus(raw) {
	case StatusPending, StatusSettled, StatusCanceled:
		return EntryStatus(raw), nil
	}
	return "", apperrors.ErrInvalidStatus
}

// Entry represents a single financial transaction owned by a user.
// Note: Value uses github.com/shopspring/decimal for precise money math.
type Entry struct {
	EntryID     string          `json:"entryID"` // Primary Key (UUID)
	Description string          `json:"description"`
	Month       int             `json:"month"` // 1..12
	Year        int             `json:"year"`  // exactly 4 digits
	Value       decimal.Decimal `json:"value"` // strictly positive
	Type        EntryType       `json:"type"`
	Status      EntryStatus     `json:"status"`
	OwnerID     string          `json:"ownerID"` // FK -> User.userID, immutable

	RegistrationDate time.Time `json:"registrationDate"` // set at creation, immutable
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// EntryFilter carries the optional search criteria for listing entries.
// OwnerID is required; zero-valued fields act as wildcards.
type EntryFilter struct {
	OwnerID     string
	Description string
	Month       int
	Year        int
}
