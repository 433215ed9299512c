package schema

import "unicode/utf8"

// Failure names the check a value failed. The zero value means the value
// passed every check.
type Failure string

const (
	FailureNone     Failure = ""
	FailureRequired Failure = "required"
	FailureType     Failure = "type"
	FailureLength   Failure = "length"
)

// Check runs the rule's checks against v in order (required, type, length)
// and reports the first one that fails.
func Check(v Value, r Rule) Failure {
	if r.HasRequired && v.IsNull() {
		return FailureRequired
	}

	if r.Type != "" && !validateType(v, r.Type) {
		return FailureType
	}

	// Length only constrains strings; other kinds pass.
	if r.Length != nil && v.Kind == KindString && !validateLength(v.Str, *r.Length) {
		return FailureLength
	}

	return FailureNone
}

// ValidateField reports whether v satisfies r.
func ValidateField(v Value, r Rule) bool {
	return Check(v, r) == FailureNone
}

func validateType(v Value, expected string) bool {
	switch expected {
	case TypeString:
		return v.Kind == KindString
	case TypeNumber:
		return v.Kind == KindNumber
	case TypeBoolean:
		return v.Kind == KindBoolean
	default:
		return true
	}
}

func validateLength(s string, l Length) bool {
	n := utf8.RuneCountInString(s)
	if l.Min != nil && n < *l.Min {
		return false
	}
	if l.Max != nil && n > *l.Max {
		return false
	}
	return true
}
