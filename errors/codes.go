package errors

import (
	"fmt"

	"github.com/kbukum/lambdakit/validation"
)

// ErrorCode is a short symbolic identifier naming a class of failure.
type ErrorCode string

// Default error codes.
const (
	// ErrCodeParam indicates a parameter required for the operation is missing.
	ErrCodeParam ErrorCode = "ERR_PARAM"
	// ErrCodeMain indicates an unclassified error surfaced from the handler.
	ErrCodeMain ErrorCode = "ERR_MAIN"
)

// Descriptor is the raw shape produced by an error code entry.
type Descriptor struct {
	Code    ErrorCode `json:"code" mapstructure:"code"`
	Message string    `json:"message" mapstructure:"message"`
	Detail  any       `json:"detail" mapstructure:"detail"`
}

// Resolver computes a Descriptor from caller-supplied arguments.
type Resolver func(args ...any) Descriptor

type entryKind uint8

const (
	kindUnset entryKind = iota
	kindStatic
	kindResolver
)

// Entry is a registry slot holding either a static Descriptor or a Resolver.
// The zero Entry is invalid and never resolves.
type Entry struct {
	kind     entryKind
	static   Descriptor
	resolver Resolver
}

// Static returns an entry that always yields d, ignoring arguments.
func Static(d Descriptor) Entry {
	return Entry{kind: kindStatic, static: d}
}

// FromResolver returns an entry that invokes fn with the raise arguments.
func FromResolver(fn Resolver) Entry {
	if fn == nil {
		return Entry{}
	}
	return Entry{kind: kindResolver, resolver: fn}
}

// IsResolver reports whether the entry computes its descriptor from arguments.
func (e Entry) IsResolver() bool { return e.kind == kindResolver }

// Valid reports whether the entry can produce a descriptor.
func (e Entry) Valid() bool { return e.kind != kindUnset }

// Descriptor resolves the entry. Arguments are ignored for static entries.
func (e Entry) Descriptor(args ...any) Descriptor {
	switch e.kind {
	case kindResolver:
		return e.resolver(args...)
	case kindStatic:
		return e.static
	default:
		return Descriptor{}
	}
}

// Registry maps error codes to their entries.
type Registry map[ErrorCode]Entry

// DefaultRegistry returns a fresh copy of the built-in error codes.
func DefaultRegistry() Registry {
	return Registry{
		ErrCodeParam: FromResolver(paramDescriptor),
		ErrCodeMain:  FromResolver(mainDescriptor),
	}
}

// NewRegistry merges custom over the defaults. Entries in custom win on
// key collision; invalid entries are skipped.
func NewRegistry(custom Registry) Registry {
	return DefaultRegistry().Merge(custom)
}

// Merge returns a new registry holding r overlaid with other.
func (r Registry) Merge(other Registry) Registry {
	out := make(Registry, len(r)+len(other))
	for code, e := range r {
		out[code] = e
	}
	for code, e := range other {
		if !e.Valid() {
			continue
		}
		out[code] = e
	}
	return out
}

// Lookup returns the entry registered for code.
func (r Registry) Lookup(code ErrorCode) (Entry, bool) {
	e, ok := r[code]
	if !ok || !e.Valid() {
		return Entry{}, false
	}
	return e, true
}

// Resolve looks up code and resolves its descriptor with args.
// It returns an error wrapping ErrUnknownCode when code is not registered.
func (r Registry) Resolve(code ErrorCode, args ...any) (Descriptor, error) {
	e, ok := r.Lookup(code)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return e.Descriptor(args...), nil
}

// paramDescriptor builds ERR_PARAM from (missingParam, customDetail).
func paramDescriptor(args ...any) Descriptor {
	var missing, custom any
	if len(args) > 0 {
		missing = args[0]
	}
	if len(args) > 1 {
		custom = args[1]
	}

	detail := custom
	if validation.IsNil(detail) {
		detail = fmt.Sprintf("Missing parameter required for operation: %v", argString(missing))
	}
	return Descriptor{
		Code:    ErrCodeParam,
		Message: "Missing Parameters.",
		Detail:  detail,
	}
}

// mainDescriptor builds ERR_MAIN from (error).
func mainDescriptor(args ...any) Descriptor {
	var detail any
	if len(args) > 0 {
		detail = args[0]
	}
	if err, ok := detail.(error); ok {
		detail = err.Error()
	}
	return Descriptor{
		Code:    ErrCodeMain,
		Message: "Generic error in main lambda handler.",
		Detail:  detail,
	}
}

func argString(v any) string {
	if validation.IsNil(v) {
		return "undefined"
	}
	return fmt.Sprint(v)
}
