package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/deppfellow/awesome-blog/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads.
//
// Validate runs after tag validation. It may return an *errs.HTTPError,
// validator.ValidationErrors or CustomValidationErrors.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field problem that validator tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by the name the client sent them under.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return strings.ToLower(f.Name)
	})
	return v
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// BindAndValidate binds the request into payload and validates it.
//
// Path parameters are applied after the body and query string, so they win
// over values of the same name. Every failure is a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := recordBodyKeys(c); err != nil {
		return err
	}

	if err := c.Bind(payload); err != nil {
		return bindError(c, err)
	}

	if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
		return bindError(c, err)
	}

	if err := validate.Struct(payload); err != nil {
		return toHTTPError(err)
	}

	if err := payload.Validate(); err != nil {
		return toHTTPError(err)
	}

	return nil
}

func bindError(c echo.Context, err error) error {
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return errs.NewBadRequestError(err.Error(), false, nil, nil, nil)
	}

	if echoErr.Code == http.StatusUnsupportedMediaType {
		ct := c.Request().Header.Get(echo.HeaderContentType)
		if ct == "" {
			return errs.NewBadRequestError("Missing Content-Type.", true, nil, nil, nil)
		}
		return errs.NewBadRequestError("Unsupported Content-Type: "+ct, true, nil, nil, nil)
	}

	message := http.StatusText(http.StatusBadRequest)
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		message = msg
	}
	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

func toHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.ValidationError(err)
	}
	return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "uuid":
			msg = "must be a valid UUID"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// bodyKeysKey holds the top-level keys of a JSON body on the echo context.
const bodyKeysKey = "validation.body_keys"

// recordBodyKeys remembers the top-level keys of a JSON object body so
// DuplicateArgs can see them after Bind has consumed the body.
func recordBodyKeys(c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 || req.Body == nil ||
		!strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return errs.NewBadRequestError("Failed to read request body", false, nil, nil, nil)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	// Anything but an object is left for Bind to report.
	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) != nil {
		return nil
	}

	keys := make(map[string]struct{}, len(fields))
	for k := range fields {
		keys[k] = struct{}{}
	}
	c.Set(bodyKeysKey, keys)
	return nil
}

// DuplicateArgs lists path parameter names that were also sent in the query
// string, a form body or a JSON body.
func DuplicateArgs(c echo.Context) []string {
	var dups []string
	query := c.QueryParams()
	form := c.Request().PostForm
	jsonKeys, _ := c.Get(bodyKeysKey).(map[string]struct{})

	for _, name := range c.ParamNames() {
		_, inJSON := jsonKeys[name]
		if query.Has(name) || form.Has(name) || inJSON {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}
