package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/directory/internal/errs"
)

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(fmt.Errorf("insert company: %w", &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "companies",
		ConstraintName: "companies_slug_key",
	}))

	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, errs.CodeConflict, httpErr.Code)
	assert.Equal(t, "A Company with this Slug already exists", httpErr.Message)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "revenue_streams",
		ColumnName: "company_id",
	})

	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, errs.CodeInvalidReference, httpErr.Code)
	assert.Equal(t, "The referenced Company does not exist", httpErr.Message)
}

func TestHandleError_ForeignKeyFromConstraintName(t *testing.T) {
	httpErr := asHTTP(t, HandleError(&pgconn.PgError{
		Code:           "23503",
		TableName:      "revenue_streams",
		ConstraintName: "revenue_streams_category_fk",
	}))
	assert.Equal(t, "The referenced Category does not exist", httpErr.Message)

	httpErr = asHTTP(t, HandleError(&pgconn.PgError{
		Code:           "23503",
		TableName:      "companies",
		ConstraintName: "companies_industry_type_slug_fkey",
	}))
	assert.Equal(t, "The referenced Industry Type does not exist", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "industry_type_slug", httpErr.Errors[0].Field)
}

func TestHandleError_RevenueTaxonomyRemovedBeforeCopy(t *testing.T) {
	tests := []struct {
		constraint string
		message    string
		field      string
	}{
		{"revenue_streams_source_fk", "The referenced Source does not exist", "source"},
		{"revenue_streams_category_fk", "The referenced Category does not exist", "category"},
		{"revenue_streams_segment_fk", "The referenced Segment does not exist", "segment"},
		{"revenue_streams_channel_fk", "The referenced Channel does not exist", "channel"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			httpErr := asHTTP(t, HandleError(fmt.Errorf("failed to copy revenue rows: %w", &pgconn.PgError{
				Code:           "23503",
				TableName:      "revenue_streams",
				ConstraintName: tt.constraint,
			})))
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, tt.field, httpErr.Errors[0].Field)
		})
	}
}

func TestReferencedEntityName(t *testing.T) {
	assert.Equal(t, "Company", referencedEntityName("revenue_streams", "company_id"))
	assert.Equal(t, "Industry Type", referencedEntityName("companies", "industry_type_slug"))
	assert.Equal(t, "Channel", referencedEntityName("revenue_streams", "channel"))
	assert.Equal(t, "Portfolio", referencedEntityName("portfolios", ""))
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "companies",
		ColumnName: "name",
	})

	httpErr := asHTTP(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "COMPANY_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleError_SerializationFailure(t *testing.T) {
	httpErr := asHTTP(t, HandleError(&pgconn.PgError{Code: "40001"}))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTP(t, HandleError(fmt.Errorf("table:companies: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Company not found", httpErr.Message)

	httpErr = asHTTP(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	original := errs.NewConflictError("dup", true, nil)
	assert.Same(t, original, HandleError(original))

	httpErr := asHTTP(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "slug", extractColumnForUniqueViolation("companies_slug_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_whatever"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestErrCode(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", ConvertPgError(&pgconn.PgError{Code: "23514"}))
	assert.Equal(t, CheckViolation, ErrCode(wrapped))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}
