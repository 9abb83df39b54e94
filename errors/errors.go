package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"
)

// ErrUnknownCode is returned when an error code is raised that the registry
// does not hold. It is a configuration bug in the calling handler.
var ErrUnknownCode = stderrors.New("unknown error code")

// TimeFormat is the ISO-8601 layout used for the "time" field.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// LambdaError is the structured error raised by handlers and serialized into
// the response body.
type LambdaError struct {
	// Code is the symbolic error code.
	Code ErrorCode
	// Message is the human-readable summary.
	Message string
	// Detail carries operation-specific information; any JSON-serializable value.
	Detail any
	// Time is when the error was created.
	Time time.Time
	// Context holds request metadata merged into the payload.
	Context map[string]any
}

// New creates a LambdaError from a descriptor, stamping it with now.
// The context map is cloned.
func New(d Descriptor, ctx map[string]any, now time.Time) *LambdaError {
	return &LambdaError{
		Code:    d.Code,
		Message: d.Message,
		Detail:  d.Detail,
		Time:    now,
		Context: cloneMap(ctx),
	}
}

// Error returns the string representation of the error.
func (e *LambdaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Detail != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Descriptor returns the code, message and detail of the error.
func (e *LambdaError) Descriptor() Descriptor {
	return Descriptor{Code: e.Code, Message: e.Message, Detail: e.Detail}
}

// Payload returns the flat wire representation: context fields first,
// then the error fields, which win on duplicate keys.
func (e *LambdaError) Payload() map[string]any {
	out := make(map[string]any, len(e.Context)+4)
	for k, v := range e.Context {
		out[k] = v
	}
	out["code"] = e.Code
	out["message"] = e.Message
	out["detail"] = e.Detail
	out["time"] = e.Time.UTC().Format(TimeFormat)
	return out
}

// MarshalJSON implements json.Marshaler using Payload.
func (e *LambdaError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Payload())
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
