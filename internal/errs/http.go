package errs

import (
	"net/http"
)

// API error codes shared with the frontend scripts.
const (
	CodeValueInvalid        = "VALUE_INVALID"
	CodeValueNotFound       = "VALUE_NOT_FOUND"
	CodePermissionForbidden = "PERMISSION_FORBIDDEN"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusForbidden)),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code replaces the default "BAD_REQUEST" when non-nil, errors carries
// per-field problems and action an optional client instruction.
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
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
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

// NewInternalServerError creates a generic 500. The real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}

// NewValueError reports invalid input on a single field.
// An empty message defaults to "Invalid <field>.".
func NewValueError(field, message string) *HTTPError {
	if message == "" {
		message = "Invalid " + field + "."
	}
	code := CodeValueInvalid
	return NewBadRequestError(message, true, &code, []FieldError{{Field: field, Error: message}}, nil)
}

// NewResourceNotFoundError reports that the named resource does not exist.
func NewResourceNotFoundError(resource, message string) *HTTPError {
	if message == "" {
		message = resource + " not found."
	}
	code := CodeValueNotFound
	return NewNotFoundError(message, true, &code)
}

// NewPermissionError reports that the current user may not perform the action.
func NewPermissionError(message string) *HTTPError {
	if message == "" {
		message = "Permission denied."
	}
	return &HTTPError{
		Code:     CodePermissionForbidden,
		Message:  message,
		Status:   http.StatusForbidden,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}
