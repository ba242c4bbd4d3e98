package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	portsrepo "github.com/groupsoftware/minhasfinancas/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxEntryRepository struct {
	db *pgxpool.Pool
}

func newPgxEntryRepository(db *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{db: db}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry inserts or updates an entry by its ID. Owner and registration
// date are immutable: the conflict clause never touches them.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	query := `
        INSERT INTO entries (entry_id, description, month, year, value, type, status, owner_id, registration_date, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (entry_id) DO UPDATE SET
            description = EXCLUDED.description,
            month = EXCLUDED.month,
            year = EXCLUDED.year,
            value = EXCLUDED.value,
            type = EXCLUDED.type,
            status = EXCLUDED.status,
            last_updated_at = EXCLUDED.last_updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Value,
		string(entry.Type),
		string(entry.Status),
		entry.OwnerID,
		entry.RegistrationDate,
		entry.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `
		SELECT entry_id, description, month, year, value, type, status, owner_id, registration_date, last_updated_at
		FROM entries
		WHERE entry_id = $1;
	`
	entry, err := scanEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	return entry, nil
}

func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM entries WHERE entry_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntries queries by owner plus whichever filter fields are set.
// Description matches as a case-insensitive substring; month and year match
// exactly. No explicit ordering is imposed.
func (r *PgxEntryRepository) FindEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, description, month, year, value, type, status, owner_id, registration_date, last_updated_at
		FROM entries
		WHERE owner_id = $1
	`
	args := []interface{}{filter.OwnerID}

	if filter.Description != "" {
		args = append(args, "%"+filter.Description+"%")
		query += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", rows.Err())
	}
	return entries, nil
}

// SumByOwnerAndType sums values across every status; canceled entries count
// like any other.
func (r *PgxEntryRepository) SumByOwnerAndType(ctx context.Context, ownerID string, entryType domain.EntryType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM entries
		WHERE owner_id = $1 AND type = $2;
	`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, ownerID, string(entryType)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries for owner %s: %w", ownerID, err)
	}
	return sum, nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var entry domain.Entry
	var entryType, status string
	err := row.Scan(
		&entry.EntryID,
		&entry.Description,
		&entry.Month,
		&entry.Year,
		&entry.Value,
		&entryType,
		&status,
		&entry.OwnerID,
		&entry.RegistrationDate,
		&entry.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Type = domain.EntryType(entryType)
	entry.Status = domain.EntryStatus(status)
	return &entry, nil
}
