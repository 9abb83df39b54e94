package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/kbukum/lambdakit/errors"
	"github.com/kbukum/lambdakit/logger"
	"github.com/kbukum/lambdakit/validation"
)

// Handler decorates a proxy response with error-code resolution, structured
// error raising and a single error funnel. It is request scoped and not
// safe for concurrent use.
type Handler struct {
	proxy             Proxy
	errorCodes        errors.Registry
	usingCustomErrors bool
	contextInfo       map[string]any
	log               *logger.Logger
	now               func() time.Time
}

// New creates a Handler with the given initial status code and sets the
// JSON content type.
func New(statusCode int, opts ...Option) *Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	proxy := o.proxy
	if proxy == nil {
		proxy = NewProxyResponse(statusCode)
	} else {
		proxy.SetStatusCode(statusCode)
	}
	if o.log == nil {
		o.log = logger.Get("response")
	}
	if o.clock == nil {
		o.clock = time.Now
	}

	h := &Handler{
		proxy:             proxy,
		errorCodes:        errors.NewRegistry(o.customErrors),
		usingCustomErrors: o.customErrors != nil,
		contextInfo:       cloneInfo(o.contextInfo),
		log:               o.log,
		now:               o.clock,
	}
	h.proxy.AddHeader("Content-Type", "application/json")
	return h
}

// UsingCustomErrors reports whether custom error codes were supplied.
func (h *Handler) UsingCustomErrors() bool { return h.usingCustomErrors }

// ErrorCodes returns a copy of the merged registry.
func (h *Handler) ErrorCodes() errors.Registry { return h.errorCodes.Merge(nil) }

// ContextInfo returns a copy of the metadata merged into error payloads.
func (h *Handler) ContextInfo() map[string]any { return cloneInfo(h.contextInfo) }

// RaiseError sets the status code and returns a LambdaError for code,
// resolved with args. The caller must return the error up the stack.
// An unregistered code yields an error wrapping errors.ErrUnknownCode.
func (h *Handler) RaiseError(code errors.ErrorCode, httpStatus int, args ...any) error {
	h.proxy.SetStatusCode(httpStatus)

	d, err := h.errorCodes.Resolve(code, args...)
	if err != nil {
		return err
	}
	return errors.New(d, h.contextInfo, h.now())
}

// HandleError writes err as the response body. Structured errors keep the
// status set when they were raised; any other error forces a 500 with an
// ERR_MAIN body carrying the error text. A nil error is ignored.
func (h *Handler) HandleError(err error) {
	if err == nil {
		return
	}

	if le, ok := errors.AsLambdaError(err); ok {
		body, mErr := json.Marshal(le)
		if mErr == nil {
			h.proxy.SetBody(string(body))
			h.log.Warn("Handled error", logger.Fields(
				logger.FieldErrorCode, string(le.Code),
				"detail", fmt.Sprint(le.Detail),
			))
			return
		}
		err = fmt.Errorf("encoding %s error: %w", le.Code, mErr)
	}

	h.proxy.SetStatusCode(http.StatusInternalServerError)
	h.proxy.SetBody(h.genericBody(err))
	h.log.Error("Unhandled error", logger.Fields(
		logger.FieldErrorCode, string(errors.ErrCodeMain),
		logger.FieldError, err.Error(),
	))
}

// genericBody serializes err through the registry's ERR_MAIN entry. If the
// payload cannot be encoded the default ERR_MAIN is used without context.
func (h *Handler) genericBody(err error) string {
	// ERR_MAIN is always registered.
	d, _ := h.errorCodes.Resolve(errors.ErrCodeMain, err.Error())
	body, mErr := json.Marshal(errors.New(d, h.contextInfo, h.now()))
	if mErr != nil {
		d = errors.DefaultRegistry()[errors.ErrCodeMain].Descriptor(mErr.Error())
		body, _ = json.Marshal(errors.New(d, nil, h.now()))
	}
	return string(body)
}

// CheckMissingParams raises ERR_PARAM with status 500 for the first field of
// obj whose value is nil. Zero values are not missing.
func (h *Handler) CheckMissingParams(obj any) error {
	if field, ok := validation.FirstMissing(obj); ok {
		return h.RaiseError(errors.ErrCodeParam, http.StatusInternalServerError, field)
	}
	return nil
}

// ValidateStruct checks `validate` tags on s and raises ERR_PARAM with
// status 400 naming the first failing field and listing every failure.
func (h *Handler) ValidateStruct(s any) error {
	fields, err := validation.Struct(s)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return h.RaiseError(errors.ErrCodeParam, http.StatusBadRequest, fields[0].Field, validation.Summary(fields))
}

// SetStatusCode sets the HTTP status code.
func (h *Handler) SetStatusCode(code int) { h.proxy.SetStatusCode(code) }

// AddHeader adds or overwrites a response header.
func (h *Handler) AddHeader(name, value string) { h.proxy.AddHeader(name, value) }

// SetBody sets the response body.
func (h *Handler) SetBody(body string) { h.proxy.SetBody(body) }

// RespondJSON sets status and a JSON-encoded body for v.
func (h *Handler) RespondJSON(status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding response body: %w", err)
	}
	h.proxy.SetStatusCode(status)
	h.proxy.SetBody(string(body))
	return nil
}

// Response finalizes the proxy response.
func (h *Handler) Response() events.APIGatewayProxyResponse {
	return h.proxy.Response()
}

func cloneInfo(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
