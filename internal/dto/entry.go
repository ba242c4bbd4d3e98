package dto

import (
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveEntryRequest carries the mutable fields of an entry for create and
// update calls. Fields are deliberately not marked required here: the
// business validator owns those rules and its messages are part of the API.
type SaveEntryRequest struct {
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	Type        string          `json:"type" binding:"omitempty,entrytype"`
	Status      string          `json:"status" binding:"omitempty,entrystatus"`
}

// UpdateEntryStatusRequest carries the target status for a status-only
// update. Membership of the value is checked by the entry service.
type UpdateEntryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SearchEntriesParams defines the query parameters for listing entries.
// Omitted fields act as wildcards.
type SearchEntriesParams struct {
	Description string `form:"description"`
	Month       int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year        int    `form:"year"`
}

// EntryResponse is the transport representation of an entry.
type EntryResponse struct {
	EntryID          string          `json:"entryID"`
	Description      string          `json:"description"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Value            decimal.Decimal `json:"value"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	OwnerID          string          `json:"ownerID"`
	RegistrationDate string          `json:"registrationDate"`
}

// BalanceResponse wraps a user's net balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ToEntryResponse converts a domain.Entry to its transport representation.
func ToEntryResponse(entry *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:          entry.EntryID,
		Description:      entry.Description,
		Month:            entry.Month,
		Year:             entry.Year,
		Value:            entry.Value,
		Type:             string(entry.Type),
		Status:           string(entry.Status),
		OwnerID:          entry.OwnerID,
		RegistrationDate: entry.RegistrationDate.Format("2006-01-02"),
	}
}

// ToEntryListResponse converts a slice of domain entries.
func ToEntryListResponse(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
