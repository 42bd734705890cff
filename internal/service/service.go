// Package service contains the business logic.
//
// It sits between the handler and repository layers. Services receive
// validated requests, enforce the rules the schema cannot express and
// shape repository results into response envelopes.
package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/deppfellow/directory/internal/errs"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/lib/utils"
	"github.com/deppfellow/directory/internal/sqlerr"
)

// logDropped records filter operators the query parser ignored.
func logDropped(ctx context.Context, entity string, d query.Descriptor) {
	if len(d.Dropped) == 0 {
		return
	}
	zerolog.Ctx(ctx).Debug().
		Str("entity", entity).
		Strs("dropped_filters", d.Dropped).
		Msg("ignored unsupported filter operators")
}

// deriveSlug returns slug, or the slug of name when slug is empty.
func deriveSlug(slug, name string) (string, error) {
	if slug != "" {
		return slug, nil
	}
	if derived := utils.Slugify(name); derived != "" {
		return derived, nil
	}
	return "", errs.NewValidationError("Validation failed", []errs.FieldError{
		{Field: "slug", Error: "could not be derived from name, provide one explicitly"},
	})
}

// storeError maps constraint violations raised by Postgres to their
// client errors and leaves every other error untouched for the global
// error handler.
func storeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return sqlerr.HandleError(err)
	}
	return err
}

// isForeignKeyViolation reports whether err is a foreign key violation,
// which on DELETE means the row is still referenced.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && sqlerr.MapCode(pgErr.Code) == sqlerr.ForeignKeyViolation
}
