package handler

import (
	"net/http"
	"reflect"
	"time"

	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/templates"
	"github.com/deppfellow/awesome-blog/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the dependencies every concrete handler shares.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated request
// and returns the response value.
//
// Req is a pointer to a struct, e.g. *model.BlogRequest.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes a successful result and describes it for logs and APM.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is set by EnhanceTracing.
}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {}

// FileResponseHandler writes a download. The handler result must be []byte.
type FileResponseHandler struct {
	status      int
	filename    string
	contentType string
}

func (h FileResponseHandler) Handle(c echo.Context, result interface{}) error {
	data := result.([]byte)
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+h.filename)
	return c.Blob(h.status, h.contentType, data)
}

func (h FileResponseHandler) GetOperation() string {
	return "handler_file"
}

func (h FileResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		txn.AddAttribute("file.name", h.filename)
		txn.AddAttribute("file.content_type", h.contentType)
		if data, ok := result.([]byte); ok {
			txn.AddAttribute("file.size_bytes", len(data))
		}
	}
}

// TemplateResponseHandler renders the named page template. The result is
// handed to the template as templates.View.Data next to the signed-in user.
type TemplateResponseHandler struct {
	status int
	name   string
}

func (h TemplateResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.Render(h.status, h.name, templates.View{
		User: middleware.GetUser(c),
		Data: result,
	})
}

func (h TemplateResponseHandler) GetOperation() string {
	return "handler_template"
}

func (h TemplateResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		txn.AddAttribute("template.name", h.name)
	}
}

// newRequest allocates a zero value of the struct behind the prototype so
// concurrent requests never share a payload.
func newRequest[Req validation.Validatable](prototype Req) Req {
	t := reflect.TypeOf(prototype)
	if t == nil || t.Kind() != reflect.Pointer {
		return prototype
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// recordPhase stores the outcome of one pipeline phase on the transaction.
func recordPhase(txn *newrelic.Transaction, phase, status string, elapsed time.Duration, err error) {
	if txn == nil {
		return
	}
	if err != nil {
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", elapsed.Milliseconds())
}

// handleRequest is the pipeline every typed endpoint runs through: binding and
// validation, request logging, New Relic attributes, timings and finally the
// response handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	// set by the nrecho middleware
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	fields := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route)

	switch rh := responseHandler.(type) {
	case FileResponseHandler:
		fields = fields.Str("filename", rh.filename).Str("content_type", rh.contentType)
	case TemplateResponseHandler:
		fields = fields.Str("template", rh.name)
	}

	logger := fields.Logger()
	logger.Info().Msg("handling request")

	if err := validation.BindAndValidate(c, req); err != nil {
		elapsed := time.Since(start)
		logger.Error().Err(err).Dur("validation_duration", elapsed).Msg("request validation failed")
		recordPhase(txn, "validation", "failed", elapsed, err)
		return err
	}

	if dups := validation.DuplicateArgs(c); len(dups) > 0 {
		logger.Warn().Strs("args", dups).Msg("duplicate arg name in path and request args")
	}

	validationDuration := time.Since(start)
	recordPhase(txn, "validation", "success", validationDuration, nil)
	logger.Debug().Dur("validation_duration", validationDuration).Msg("request validation successful")

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)
	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")
		recordPhase(txn, "handler", "error", handlerDuration, err)
		return err
	}

	recordPhase(txn, "handler", "success", handlerDuration, nil)
	if txn != nil {
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler into an echo.HandlerFunc answering with JSON.
//
// req is only a prototype; every request binds into a fresh value of its type.
//
//	api.POST("/blogs", handler.Handle(h.Handler, h.CreateBlog, http.StatusOK, &model.BlogRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleFile wraps a handler returning file bytes into a download response.
func HandleFile[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, []byte],
	status int,
	req Req,
	filename string,
	contentType string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, FileResponseHandler{
			status:      status,
			filename:    filename,
			contentType: contentType,
		})
	}
}

// HandleNoContent is Handle for endpoints without a response body.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (interface{}, error) {
			err := handler(c, req)
			return nil, err
		}, NoContentResponseHandler{status: status})
	}
}

// HandleTemplate renders the named page template with the handler result.
func HandleTemplate[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	name string,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, TemplateResponseHandler{status: http.StatusOK, name: name})
	}
}
