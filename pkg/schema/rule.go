package schema

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidRules is returned when the validation list is not a JSON array
	// of objects.
	ErrInvalidRules = errors.New("invalid validation rules")
)

// Supported type tags. Any other tag is accepted without checking.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Length bounds a string's length in characters. A nil bound is
// unconstrained.
type Length struct {
	Min *int
	Max *int
}

// Rule holds the validation requirements for a single field.
type Rule struct {
	// HasRequired is true when the rule carries a "required" attribute at all.
	// The null check keys off presence; the required-field checklist keys off
	// Required.
	HasRequired bool
	Required    bool

	// Type is the expected type tag, empty when the rule has none.
	Type string

	// Length is nil when the rule has no length attribute.
	Length *Length
}

// RuleSet is the compiled form of one page's validation list. It is
// immutable once built.
type RuleSet struct {
	rules    map[string]Rule
	required []string
}

// Rule returns the rule for field, if one was declared.
func (rs RuleSet) Rule(field string) (Rule, bool) {
	r, ok := rs.rules[field]
	return r, ok
}

// Required returns a copy of the required field names in declaration order.
func (rs RuleSet) Required() []string {
	out := make([]string, len(rs.required))
	copy(out, rs.required)
	return out
}

// Len returns the number of distinct fields with a rule.
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// ParseRules decodes a raw validation list and compiles it.
func ParseRules(raw []byte) (RuleSet, error) {
	if !gjson.ValidBytes(raw) {
		return RuleSet{}, fmt.Errorf("%w: not valid JSON", ErrInvalidRules)
	}
	return Compile(gjson.ParseBytes(raw))
}

// Compile builds a RuleSet from a validation list: an array of objects, each
// mapping field names to rule objects. Later declarations of a field replace
// earlier ones; the required list keeps every declaration with
// "required": true, in order.
func Compile(validations gjson.Result) (RuleSet, error) {
	if !validations.IsArray() {
		return RuleSet{}, fmt.Errorf("%w: expected array, got %s", ErrInvalidRules, validations.Type)
	}

	rs := RuleSet{rules: make(map[string]Rule)}
	var err error

	validations.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			err = fmt.Errorf("%w: entry %s is not an object", ErrInvalidRules, entry.Raw)
			return false
		}
		entry.ForEach(func(name, def gjson.Result) bool {
			var rule Rule
			rule, err = parseRule(name.String(), def)
			if err != nil {
				return false
			}
			rs.rules[name.String()] = rule
			if rule.Required {
				rs.required = append(rs.required, name.String())
			}
			return true
		})
		return err == nil
	})
	if err != nil {
		return RuleSet{}, err
	}

	return rs, nil
}

func parseRule(field string, def gjson.Result) (Rule, error) {
	if !def.IsObject() {
		return Rule{}, fmt.Errorf("%w: rule for %q is not an object", ErrInvalidRules, field)
	}

	var rule Rule
	if req := def.Get("required"); req.Exists() {
		rule.HasRequired = true
		rule.Required = req.Bool()
	}
	if typ := def.Get("type"); typ.Exists() {
		rule.Type = typ.String()
	}
	// Non-object length values and non-numeric bounds impose no constraint.
	if length := def.Get("length"); length.IsObject() {
		rule.Length = &Length{
			Min: bound(length.Get("min")),
			Max: bound(length.Get("max")),
		}
	}

	return rule, nil
}

func bound(r gjson.Result) *int {
	if r.Type != gjson.Number {
		return nil
	}
	n := int(r.Int())
	return &n
}
