// Package store provides database access methods for all CraftPress
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods. Static statements use raw SQL with positional parameters;
// list queries with optional search and status filters are built with
// squirrel.
package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// psql is the squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ListParams carries the pagination and search values shared by all admin
// list endpoints (?page, ?limit, ?search).
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page and limit into sane bounds.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset returns the SQL offset for the normalized page/limit.
func (p ListParams) Offset() uint64 {
	return uint64((p.Page - 1) * p.Limit)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505). Handlers translate these into 409 responses.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
