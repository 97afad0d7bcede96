package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind selects the coercion applied to a looked-up value. The set is closed:
// every kind has a pure, total coercion function that reports failure instead
// of returning an error, so callers can substitute a default.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Coerce converts val to the requested kind. The second return reports
// whether the conversion succeeded; on false the first return is the kind's
// zero value and callers should fall back to their default.
func Coerce(val any, kind Kind) (any, bool) {
	switch kind {
	case KindString:
		return coerceString(val)
	case KindInt:
		return coerceInt(val)
	case KindFloat:
		return coerceFloat(val)
	case KindBool:
		return coerceBool(val)
	default:
		return nil, false
	}
}

// coerceString converts common scalar types to their string form.
func coerceString(val any) (string, bool) {
	if val == nil {
		return "", false
	}

	if s, ok := val.(string); ok {
		return s, true
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), true
	case []byte:
		return string(v), true
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}

	return "", false
}

// coerceInt converts numeric types, parsable strings, and booleans to int64.
// Floats truncate. Unsigned values that overflow int64 fail.
func coerceInt(val any) (int64, bool) {
	if val == nil {
		return 0, false
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(int64(^uint64(0)>>1)) {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), true
	case reflect.String:
		s := rv.String()
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

// coerceFloat converts numeric types, parsable strings, and booleans to float64.
func coerceFloat(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.String:
		if f, err := strconv.ParseFloat(rv.String(), 64); err == nil {
			return f, true
		}
		return 0, false
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

// coerceBool converts values to bool.
//
// String policy: "true" and "1" are true, "false" and "0" are false
// (case-insensitive); any other string is truthy when non-empty and falsy
// when empty. Numeric values are true when non-zero.
func coerceBool(val any) (bool, bool) {
	if val == nil {
		return false, false
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		switch strings.ToLower(rv.String()) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return rv.String() != "", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, true
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, true
	}

	return false, false
}
