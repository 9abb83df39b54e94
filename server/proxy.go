package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"

	"github.com/kbukum/lambdakit/response"
	"github.com/kbukum/lambdakit/server/middleware"
)

// toProxyRequest builds an API Gateway proxy event from a gin request.
func toProxyRequest(c *gin.Context, resource, stage string) (events.APIGatewayProxyRequest, error) {
	var raw []byte
	if c.Request.Body != nil {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, fmt.Errorf("reading request body: %w", err)
		}
		raw = b
	}

	body, encoded := string(raw), false
	if !utf8.Valid(raw) {
		body, encoded = base64.StdEncoding.EncodeToString(raw), true
	}

	query := c.Request.URL.Query()
	req := events.APIGatewayProxyRequest{
		Resource:                        resource,
		Path:                            c.Request.URL.Path,
		HTTPMethod:                      c.Request.Method,
		Headers:                         firstValues(c.Request.Header),
		MultiValueHeaders:               c.Request.Header.Clone(),
		QueryStringParameters:           firstValues(query),
		MultiValueQueryStringParameters: query,
		PathParameters:                  pathParameters(c.Params),
		Body:                            body,
		IsBase64Encoded:                 encoded,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:        c.GetString(middleware.RequestIDKey),
			Stage:            stage,
			ResourcePath:     resource,
			HTTPMethod:       c.Request.Method,
			Path:             c.Request.URL.Path,
			RequestTimeEpoch: time.Now().UnixMilli(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			},
		},
	}
	return req, nil
}

// writeProxyResponse copies a proxy response onto the gin writer.
func writeProxyResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			WriteError(c, fmt.Errorf("decoding base64 response body: %w", err))
			return
		}
		body = decoded
	}

	for name, values := range resp.MultiValueHeaders {
		for _, v := range values {
			c.Writer.Header().Add(name, v)
		}
	}
	for name, v := range resp.Headers {
		c.Writer.Header().Set(name, v)
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.Status(status)
	_, _ = c.Writer.Write(body)
}

// WriteError renders err with the uniform error body.
func WriteError(c *gin.Context, err error) {
	writeProxyResponse(c, errorResponse(c, err))
}

// errorResponse funnels err through a response handler scoped to c.
func errorResponse(c *gin.Context, err error) events.APIGatewayProxyResponse {
	h := response.New(http.StatusInternalServerError, response.WithContextInfo(map[string]any{
		"requestId": c.GetString(middleware.RequestIDKey),
	}))
	h.HandleError(err)
	return h.Response()
}

func firstValues(m map[string][]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func pathParameters(params gin.Params) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for _, p := range params {
		out[p.Key] = strings.TrimPrefix(p.Value, "/")
	}
	return out
}

// ginRoute converts API Gateway {param} and {proxy+} segments into gin
// path syntax.
func ginRoute(resource string) string {
	segments := strings.Split(resource, "/")
	for i, s := range segments {
		if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
		if strings.HasSuffix(name, "+") {
			segments[i] = "*" + strings.TrimSuffix(name, "+")
		} else {
			segments[i] = ":" + name
		}
	}
	return strings.Join(segments, "/")
}
