package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2024, 3, 1, 12, 30, 45, 123000000, time.UTC)

func TestDefaultRegistry_Param(t *testing.T) {
	reg := DefaultRegistry()

	d, err := reg.Resolve(ErrCodeParam, "email")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Code != ErrCodeParam {
		t.Errorf("expected code ERR_PARAM, got %s", d.Code)
	}
	if d.Message != "Missing Parameters." {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Detail != "Missing parameter required for operation: email" {
		t.Errorf("unexpected detail %v", d.Detail)
	}
}

func TestDefaultRegistry_ParamCustomDetail(t *testing.T) {
	d, err := DefaultRegistry().Resolve(ErrCodeParam, "email", "Custom msg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Detail != "Custom msg" {
		t.Errorf("expected custom detail, got %v", d.Detail)
	}
}

func TestDefaultRegistry_ParamNilCustomDetail(t *testing.T) {
	tests := []struct {
		name   string
		custom any
	}{
		{"untyped nil", nil},
		{"typed nil pointer", (*string)(nil)},
		{"nil map", map[string]any(nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := DefaultRegistry().Resolve(ErrCodeParam, "name", tc.custom)
			if d.Detail != "Missing parameter required for operation: name" {
				t.Errorf("nil custom detail should fall back to default, got %#v", d.Detail)
			}
		})
	}
}

func TestDefaultRegistry_ParamTypedNilParam(t *testing.T) {
	d, _ := DefaultRegistry().Resolve(ErrCodeParam, (*string)(nil))
	if d.Detail != "Missing parameter required for operation: undefined" {
		t.Errorf("unexpected detail %v", d.Detail)
	}
}

func TestDefaultRegistry_Main(t *testing.T) {
	d, err := DefaultRegistry().Resolve(ErrCodeMain, "boom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Code != ErrCodeMain || d.Message != "Generic error in main lambda handler." {
		t.Errorf("unexpected descriptor %+v", d)
	}
	if d.Detail != "boom" {
		t.Errorf("expected detail boom, got %v", d.Detail)
	}

	d, _ = DefaultRegistry().Resolve(ErrCodeMain, fmt.Errorf("wrapped"))
	if d.Detail != "wrapped" {
		t.Errorf("error argument should be stringified, got %v", d.Detail)
	}
}

func TestRegistry_UnknownCode(t *testing.T) {
	_, err := DefaultRegistry().Resolve("ERR_NOPE")
	if err == nil {
		t.Fatal("expected error for unknown code")
	}
	if !stderrors.Is(err, ErrUnknownCode) {
		t.Errorf("expected ErrUnknownCode, got %v", err)
	}
	if !strings.Contains(err.Error(), "ERR_NOPE") {
		t.Errorf("error should name the code, got %q", err.Error())
	}
}

func TestNewRegistry_OverrideWins(t *testing.T) {
	custom := Registry{
		ErrCodeParam: Static(Descriptor{Code: "X", Message: "Y", Detail: "Z"}),
		"ERR_AUTH":   Static(Descriptor{Code: "ERR_AUTH", Message: "Unauthorized."}),
	}
	reg := NewRegistry(custom)

	d, err := reg.Resolve(ErrCodeParam, "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Code != "X" || d.Message != "Y" || d.Detail != "Z" {
		t.Errorf("expected custom descriptor verbatim, got %+v", d)
	}
	if _, ok := reg.Lookup("ERR_AUTH"); !ok {
		t.Error("expected custom code to be registered")
	}
	if _, ok := reg.Lookup(ErrCodeMain); !ok {
		t.Error("expected default ERR_MAIN to survive the merge")
	}
}

func TestRegistry_MergeDoesNotMutate(t *testing.T) {
	base := DefaultRegistry()
	merged := base.Merge(Registry{"ERR_X": Static(Descriptor{Code: "ERR_X"})})

	if _, ok := base["ERR_X"]; ok {
		t.Error("Merge must not mutate the receiver")
	}
	if len(merged) != 3 {
		t.Errorf("expected 3 entries, got %d", len(merged))
	}
}

func TestRegistry_InvalidEntriesSkipped(t *testing.T) {
	reg := NewRegistry(Registry{ErrCodeMain: {}, "ERR_NIL": FromResolver(nil)})

	e, ok := reg.Lookup(ErrCodeMain)
	if !ok || !e.IsResolver() {
		t.Error("zero entry must not replace the default resolver")
	}
	if _, ok := reg.Lookup("ERR_NIL"); ok {
		t.Error("nil resolver must not register")
	}
}

func TestEntry_StaticIgnoresArgs(t *testing.T) {
	e := Static(Descriptor{Code: "C", Message: "M", Detail: 7})
	if e.IsResolver() {
		t.Error("static entry reported as resolver")
	}
	if d := e.Descriptor("a", "b"); d.Detail != 7 {
		t.Errorf("expected static detail, got %v", d.Detail)
	}
}

func TestLambdaError_Payload(t *testing.T) {
	ctx := map[string]any{"requestId": "req-1", "code": "shadowed"}
	le := New(Descriptor{Code: ErrCodeParam, Message: "m", Detail: "d"}, ctx, fixedTime)

	p := le.Payload()
	if p["code"] != ErrCodeParam {
		t.Errorf("error fields must win over context, got %v", p["code"])
	}
	if p["requestId"] != "req-1" {
		t.Errorf("expected context field, got %v", p["requestId"])
	}
	if p["time"] != "2024-03-01T12:30:45.123Z" {
		t.Errorf("unexpected time %v", p["time"])
	}

	ctx["requestId"] = "mutated"
	if le.Payload()["requestId"] != "req-1" {
		t.Error("context must be cloned at construction")
	}
}

func TestLambdaError_MarshalJSON(t *testing.T) {
	le := New(Descriptor{Code: ErrCodeMain, Message: "m", Detail: map[string]any{"n": 1}}, nil, fixedTime)

	raw, err := json.Marshal(le)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got["code"] != "ERR_MAIN" || got["message"] != "m" {
		t.Errorf("unexpected body %s", raw)
	}
	if len(got) != 4 {
		t.Errorf("expected exactly code/message/detail/time, got %v", got)
	}
}

func TestLambdaError_NullDetail(t *testing.T) {
	raw, _ := json.Marshal(New(Descriptor{Code: "C"}, nil, fixedTime))
	if !strings.Contains(string(raw), `"detail":null`) {
		t.Errorf("nil detail should serialize as null, got %s", raw)
	}
}

func TestLambdaError_ErrorString(t *testing.T) {
	le := New(Descriptor{Code: ErrCodeParam, Message: "Missing Parameters.", Detail: "x"}, nil, fixedTime)
	if s := le.Error(); !strings.Contains(s, "ERR_PARAM") || !strings.Contains(s, "Missing Parameters.") {
		t.Errorf("unexpected Error() %q", s)
	}

	var nilErr *LambdaError
	if nilErr.Error() != "<nil>" {
		t.Error("nil receiver should render <nil>")
	}
}

func TestAsLambdaError_Wrapped(t *testing.T) {
	le := New(Descriptor{Code: ErrCodeParam}, nil, fixedTime)
	wrapped := fmt.Errorf("outer: %w", le)

	got, ok := AsLambdaError(wrapped)
	if !ok || got != le {
		t.Fatal("expected AsLambdaError to unwrap")
	}
	if !IsLambdaError(wrapped) {
		t.Error("expected IsLambdaError true")
	}
	if IsLambdaError(fmt.Errorf("plain")) {
		t.Error("plain error is not a LambdaError")
	}
	if _, ok := AsLambdaError(nil); ok {
		t.Error("nil is not a LambdaError")
	}
}

func TestIsUnknownCode(t *testing.T) {
	_, err := DefaultRegistry().Resolve("MISSING")
	if !IsUnknownCode(err) {
		t.Error("expected IsUnknownCode true")
	}
	if IsUnknownCode(fmt.Errorf("other")) {
		t.Error("expected IsUnknownCode false")
	}
}
