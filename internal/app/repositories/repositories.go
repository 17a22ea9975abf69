package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so repositories can run
// against the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds PostgreSQL statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	OfferingRepository     *OfferingRepository
	CatalogRepository      *CatalogRepository
	StudentRepository      *StudentRepository
	RegistrationRepository *RegistrationRepository
	UserRepository         *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		OfferingRepository:     NewOfferingRepository(db),
		CatalogRepository:      NewCatalogRepository(db),
		StudentRepository:      NewStudentRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}
