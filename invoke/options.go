package invoke

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lambdakit/errors"
	"github.com/kbukum/lambdakit/logger"
)

// RequestIDKey is the contextInfo key holding the invocation request id.
const RequestIDKey = "requestId"

// Option configures Wrap.
type Option func(*config)

type config struct {
	statusCode   int
	customErrors errors.Registry
	contextInfo  map[string]any
	log          *logger.Logger
	tracer       trace.Tracer
}

func defaultConfig() config {
	return config{statusCode: http.StatusOK}
}

// WithStatusCode sets the initial status code of every response.
func WithStatusCode(code int) Option {
	return func(c *config) { c.statusCode = code }
}

// WithCustomErrors overrides or extends the default error codes.
func WithCustomErrors(reg errors.Registry) Option {
	return func(c *config) { c.customErrors = reg }
}

// WithContextInfo adds static metadata to every error payload, alongside the
// request id.
func WithContextInfo(info map[string]any) Option {
	return func(c *config) { c.contextInfo = info }
}

// WithLogger sets the logger for invocation and error logs.
func WithLogger(l *logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithTracer sets the tracer used to span each invocation.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) { c.tracer = t }
}
