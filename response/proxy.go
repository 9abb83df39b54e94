package response

import (
	"github.com/aws/aws-lambda-go/events"
)

// Proxy is the response collaborator a Handler writes to.
type Proxy interface {
	SetStatusCode(code int)
	AddHeader(name, value string)
	SetBody(body string)
	// Response finalizes the proxy-format response.
	Response() events.APIGatewayProxyResponse
}

// ProxyResponse is the default Proxy, backed by an API Gateway proxy response.
type ProxyResponse struct {
	resp events.APIGatewayProxyResponse
}

var _ Proxy = (*ProxyResponse)(nil)

// NewProxyResponse creates a response with the given initial status code.
func NewProxyResponse(statusCode int) *ProxyResponse {
	return &ProxyResponse{
		resp: events.APIGatewayProxyResponse{
			StatusCode: statusCode,
			Headers:    map[string]string{},
		},
	}
}

// SetStatusCode sets the HTTP status code.
func (p *ProxyResponse) SetStatusCode(code int) { p.resp.StatusCode = code }

// AddHeader adds or overwrites a response header.
func (p *ProxyResponse) AddHeader(name, value string) {
	if p.resp.Headers == nil {
		p.resp.Headers = map[string]string{}
	}
	p.resp.Headers[name] = value
}

// SetBody sets the serialized response body.
func (p *ProxyResponse) SetBody(body string) { p.resp.Body = body }

// StatusCode returns the current status code.
func (p *ProxyResponse) StatusCode() int { return p.resp.StatusCode }

// Header returns the current value of a response header.
func (p *ProxyResponse) Header(name string) string { return p.resp.Headers[name] }

// Body returns the current body.
func (p *ProxyResponse) Body() string { return p.resp.Body }

// Response returns a copy of the response with its own header map.
func (p *ProxyResponse) Response() events.APIGatewayProxyResponse {
	out := p.resp
	out.Headers = make(map[string]string, len(p.resp.Headers))
	for k, v := range p.resp.Headers {
		out.Headers[k] = v
	}
	return out
}
