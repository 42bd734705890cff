package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
//   - action: optional client instruction (e.g. redirect)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := CodeNotFound
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 Conflict HTTPError, used for uniqueness
// violations such as a duplicated slug or composite key.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	formattedCode := CodeConflict
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

// NewInvalidReferenceError creates a 422 HTTPError for a referenced id or
// slug that does not exist or belongs to another industry.
//
// field names the request field carrying the bad reference and is reported
// as a field error when non-empty.
func NewInvalidReferenceError(message string, field string) *HTTPError {
	var fieldErrors []FieldError
	if field != "" {
		fieldErrors = []FieldError{{Field: field, Error: message}}
	}

	return &HTTPError{
		Code:     CodeInvalidReference,
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: true,
		Errors:   fieldErrors,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	code := CodeValidation
	return NewBadRequestError("Validation failed: "+err.Error(), false, &code, nil, nil)
}

// NewValidationError creates a 400 with code VALIDATION_FAILED and
// per-field details.
func NewValidationError(message string, fieldErrors []FieldError) *HTTPError {
	code := CodeValidation
	return NewBadRequestError(message, true, &code, fieldErrors, nil)
}

// NotFoundf is a shorthand for an overridable NotFound with a formatted message.
func NotFoundf(format string, args ...any) *HTTPError {
	return NewNotFoundError(fmt.Sprintf(format, args...), true, nil)
}

// IsCode reports whether err carries an *HTTPError with the given code.
func IsCode(err error, code string) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code == code
	}
	return false
}
