package response

import (
	"time"

	"github.com/kbukum/lambdakit/errors"
	"github.com/kbukum/lambdakit/logger"
)

// Option configures a Handler.
type Option func(*options)

type options struct {
	customErrors errors.Registry
	contextInfo  map[string]any
	proxy        Proxy
	log          *logger.Logger
	clock        func() time.Time
}

// WithCustomErrors overrides or extends the default error codes.
func WithCustomErrors(reg errors.Registry) Option {
	return func(o *options) { o.customErrors = reg }
}

// WithContextInfo sets metadata merged into every error payload.
func WithContextInfo(info map[string]any) Option {
	return func(o *options) { o.contextInfo = info }
}

// WithProxy replaces the default ProxyResponse collaborator.
func WithProxy(p Proxy) Option {
	return func(o *options) { o.proxy = p }
}

// WithLogger sets the logger used to record handled errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithClock sets the time source for error timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}
