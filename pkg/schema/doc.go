// Package schema compiles server-supplied validation rules and checks
// individual field values against them.
//
// A page's validation list is an array of single-key objects:
//
//	[
//	  {"name": {"required": true, "type": "string", "length": {"min": 5}}},
//	  {"email": {"required": true}},
//	  {"age": {"type": "number"}}
//	]
//
// Compile turns it into a RuleSet. Field values are decoded into Value, a
// tagged union over the JSON kinds, and checked with ValidateField:
//
//	rules, err := schema.Compile(gjson.Parse(raw))
//	rule, ok := rules.Rule("name")
//	if ok && !schema.ValidateField(schema.String("Bob"), rule) {
//		// "name" is invalid
//	}
//
// Checks run in order and stop at the first failure:
//   - required: a rule carrying a "required" attribute rejects null
//   - type: "string", "number" and "boolean" are enforced, other tags pass
//   - length: min/max character counts, applied to strings only
package schema
