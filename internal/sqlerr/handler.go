package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/directory/internal/errs"
)

var uniqueKeySuffix = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the mapped Code for a given error, Other when err
// does not carry an *Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// singular is a crude singularization good enough for the table names in
// this schema: "companies" -> "company", "users" -> "user".
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(name, "s") && len(name) > 1:
		return name[:len(name)-1]
	}
	return name
}

// generateErrorCode creates "<DOMAIN>_<ACTION>" codes from DB errors,
// e.g. companies + NotNullViolation => COMPANY_REQUIRED.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "record"
	}

	domain := strings.ToUpper(singular(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", referencedEntityName(sqlErr.TableName, sqlErr.ColumnName))

	case UniqueViolation:
		// "identifier" is replaced by the column when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case SerializationFailed, DeadlockDetected:
		return "The record was modified concurrently, please retry"

	case InvalidTextRep, NumericOutOfRange:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column data.
//
// A column ending in "_id" or "_slug" wins ("company_id" -> "Company"),
// then the singularized table name, then "record".
func getEntityName(tableName, columnName string) string {
	column := strings.ToLower(columnName)
	for _, suffix := range []string{"_id", "_slug"} {
		if entity, ok := strings.CutSuffix(column, suffix); ok && entity != "" {
			return humanizeText(entity)
		}
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

// referencedEntityName names the target of a foreign key. The referencing
// column always names it, with or without an "_id"/"_slug" suffix
// ("category" from revenue_streams_category_fk -> "Category").
func referencedEntityName(tableName, columnName string) string {
	entity := getEntityName(tableName, columnName)
	column := strings.ToLower(columnName)
	if column != "" && !strings.HasSuffix(column, "_id") && !strings.HasSuffix(column, "_slug") {
		return humanizeText(column)
	}
	return entity
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique constraint name.
//
// Supported conventions:
//   - "unique_<table>_<column>"      unique_users_email -> email
//   - "<table>_<column>_(key|ukey)"  companies_slug_key -> slug
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeySuffix.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractReferenceFromConstraint infers the referenced column from a
// foreign key constraint name when Postgres does not report the column.
//
//   - "<table>_<column>_fkey"  companies_industry_type_slug_fkey -> industry_type_slug
//   - "<table>_<column>_fk"    revenue_streams_category_fk -> category
func extractReferenceFromConstraint(tableName, constraintName string) string {
	name := strings.TrimPrefix(constraintName, tableName+"_")
	for _, suffix := range []string{"_fkey", "_fk"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok && trimmed != "" && trimmed != name {
			return trimmed
		}
	}
	return ""
}

// HandleError converts a low-level database error into an application error.
//
//   - *errs.HTTPError: returned unchanged
//   - foreign key violation: InvalidReference (422)
//   - unique violation, serialization failure, deadlock: Conflict (409)
//   - not-null, check, malformed values: Bad Request (400)
//   - ErrNoRows: Not Found (404)
//   - anything else: Internal Server Error (500)
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		if sqlErr.Code == ForeignKeyViolation && sqlErr.ColumnName == "" {
			sqlErr.ColumnName = extractReferenceFromConstraint(sqlErr.TableName, sqlErr.ConstraintName)
		}
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewInvalidReferenceError(userMessage, strings.ToLower(sqlErr.ColumnName))

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, nil)

		case SerializationFailed, DeadlockDetected:
			return errs.NewConflictError(userMessage, true, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case InvalidTextRep, NumericOutOfRange:
			return errs.NewBadRequestError(userMessage, true, nil, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		// Repositories may prefix the error with "table:<name>:" to name the entity.
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := getEntityName(table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
