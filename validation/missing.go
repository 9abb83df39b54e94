package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// FirstMissing returns the name of the first field of obj whose value is nil.
//
// Maps are scanned in sorted key order. Structs (or pointers to structs) are
// scanned in declaration order over exported fields, using the json tag name
// when present. Untagged embedded structs are flattened into their parent
// the way encoding/json promotes their fields; a nil embedded pointer is
// reported under its type name. Any other value, including nil, has no
// fields and reports nothing missing.
func FirstMissing(obj any) (string, bool) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		return firstMissingKey(v)
	case reflect.Struct:
		return firstMissingField(v)
	default:
		return "", false
	}
}

type mapKey struct {
	name string
	key  reflect.Value
}

func firstMissingKey(v reflect.Value) (string, bool) {
	keys := make([]mapKey, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, mapKey{name: fmt.Sprint(k.Interface()), key: k})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].name < keys[j].name })

	for _, k := range keys {
		if isNil(v.MapIndex(k.key)) {
			return k.name, true
		}
	}
	return "", false
}

func firstMissingField(v reflect.Value) (string, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := tagName(f)
		if tag == "-" {
			continue
		}
		if f.Anonymous && tag == "" && isStructLike(f.Type) {
			fv := v.Field(i)
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					return f.Name, true
				}
				fv = fv.Elem()
			}
			if name, ok := firstMissingField(fv); ok {
				return name, true
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if isNil(v.Field(i)) {
			return FieldName(f), true
		}
	}
	return "", false
}

// FieldName returns the json tag name of f, or its Go name when untagged.
func FieldName(f reflect.StructField) string {
	if name := tagName(f); name != "" {
		return name
	}
	return f.Name
}

func tagName(f reflect.StructField) string {
	return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// IsNil reports whether v is nil, including typed nils held in an interface.
// Zero scalars are not nil.
func IsNil(v any) bool {
	return isNil(reflect.ValueOf(v))
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
