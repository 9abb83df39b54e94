package invoke

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lambdakit/logger"
	"github.com/kbukum/lambdakit/response"
)

const tracerName = "github.com/kbukum/lambdakit/invoke"

// Func is the business logic of a proxy handler. A returned error is
// written to the response by the Handler.
type Func func(ctx context.Context, req events.APIGatewayProxyRequest, h *response.Handler) error

// ProxyHandler is the signature accepted by lambda.Start.
type ProxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Wrap turns fn into a ProxyHandler. The returned handler never returns an
// error to the runtime.
func Wrap(fn Func, opts ...Option) ProxyHandler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Get("invoke")
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}

	// warm flips on the first invocation served by this handler.
	var warm atomic.Bool

	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		start := time.Now()
		coldStart := !warm.Swap(true)
		requestID := RequestID(ctx, req)
		ctx = logger.ContextWithRequestID(ctx, requestID)

		ctx, span := cfg.tracer.Start(ctx, spanName(req), trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		span.SetAttributes(
			attribute.String("http.request.method", req.HTTPMethod),
			attribute.String("http.route", req.Resource),
			attribute.String("faas.invocation_id", requestID),
			attribute.Bool("faas.coldstart", coldStart),
		)

		log := cfg.log.WithContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			log = log.WithFields(map[string]interface{}{logger.FieldTraceID: sc.TraceID().String()})
		}

		h := response.New(cfg.statusCode,
			response.WithCustomErrors(cfg.customErrors),
			response.WithContextInfo(contextInfo(cfg.contextInfo, requestID)),
			response.WithLogger(log),
		)

		err := run(ctx, fn, req, h, log)
		if err != nil {
			h.HandleError(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		resp := h.Response()
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

		log.Debug("Invocation completed",
			logger.DurationFields("invoke", time.Since(start)),
			logger.Fields(
				logger.FieldMethod, req.HTTPMethod,
				logger.FieldPath, req.Path,
				logger.FieldStatusCode, resp.StatusCode,
				logger.FieldColdStart, coldStart,
			))
		return resp, nil
	}
}

// run calls fn, converting a panic into an error.
func run(ctx context.Context, fn Func, req events.APIGatewayProxyRequest, h *response.Handler, log *logger.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic recovered", map[string]interface{}{
				"error": fmt.Sprintf("%v", r),
				"stack": string(debug.Stack()),
			})
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, req, h)
}

// RequestID returns the API Gateway request id, falling back to the Lambda
// invocation id and finally to a random UUID.
func RequestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	if id := req.RequestContext.RequestID; id != "" {
		return id
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.New().String()
}

func contextInfo(static map[string]any, requestID string) map[string]any {
	info := make(map[string]any, len(static)+1)
	for k, v := range static {
		info[k] = v
	}
	info[RequestIDKey] = requestID
	return info
}

func spanName(req events.APIGatewayProxyRequest) string {
	route := req.Resource
	if route == "" {
		route = req.Path
	}
	if req.HTTPMethod == "" {
		return route
	}
	return req.HTTPMethod + " " + route
}
