package pgsql

import (
	portsrepo "github.com/groupsoftware/minhasfinancas/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:  newPgxUserRepository(dbPool),
		EntryRepo: newPgxEntryRepository(dbPool),
	}
}
