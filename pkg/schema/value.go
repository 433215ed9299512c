package schema

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind is the JSON type tag of a decoded value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a decoded JSON value tagged with its kind.
type Value struct {
	Kind Kind

	// Str holds the unescaped contents of a string value.
	Str string

	// Raw is the JSON text the value was decoded from.
	Raw string
}

// ValueOf converts a gjson result into a Value. A result that does not
// exist is reported as null.
func ValueOf(r gjson.Result) Value {
	switch r.Type {
	case gjson.String:
		return Value{Kind: KindString, Str: r.Str, Raw: r.Raw}
	case gjson.Number:
		return Value{Kind: KindNumber, Raw: r.Raw}
	case gjson.True, gjson.False:
		return Value{Kind: KindBoolean, Raw: r.Raw}
	case gjson.JSON:
		if r.IsArray() {
			return Value{Kind: KindArray, Raw: r.Raw}
		}
		return Value{Kind: KindObject, Raw: r.Raw}
	default:
		return Null()
	}
}

// Null returns the JSON null value.
func Null() Value {
	return Value{Kind: KindNull, Raw: "null"}
}

// String returns a string value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s, Raw: strconv.Quote(s)}
}

// Number returns a number value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBoolean, Raw: strconv.FormatBool(b)}
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Text renders the value as plain text: string contents unquoted, every
// other kind as its JSON text.
func (v Value) Text() string {
	if v.Kind == KindString {
		return v.Str
	}
	return v.Raw
}
