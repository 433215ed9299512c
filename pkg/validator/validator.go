// Package validator checks customer records against a page's compiled rule
// set and aggregates the invalid ones into a report.
package validator

import (
	"fmt"
	"slices"

	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Prometheus metrics for validation.
var (
	customersValidatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custval_customers_validated_total",
		Help: "Total customer records validated",
	})

	invalidCustomersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custval_invalid_customers_total",
		Help: "Total customer records with at least one invalid field",
	})

	fieldFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custval_field_failures_total",
		Help: "Total invalid field entries by failed check",
	}, []string{"check"})
)

// checkMissing labels required fields that were absent from the record.
const checkMissing = "missing"

// Validator validates customers page by page.
type Validator struct {
	logger zerolog.Logger
}

// New creates a Validator that logs through logger.
func New(logger zerolog.Logger) *Validator {
	return &Validator{logger: logger}
}

// ValidateCustomer checks every field of c that has a rule and then the
// required-field checklist. Presence satisfies the checklist whether or not
// the value was valid. It returns nil when the customer is valid.
func (v *Validator) ValidateCustomer(c Customer, rules schema.RuleSet) (*InvalidCustomer, error) {
	id, err := c.ID()
	if err != nil {
		return nil, err
	}

	customersValidatedTotal.Inc()

	remaining := rules.Required()
	invalid := InvalidCustomer{ID: id}

	for _, f := range c.Fields {
		if rule, ok := rules.Rule(f.Name); ok {
			if failure := schema.Check(f.Value, rule); failure != schema.FailureNone {
				invalid.addField(f.Name)
				fieldFailuresTotal.WithLabelValues(string(failure)).Inc()
				v.logger.Debug().
					Str("customer_id", id).
					Str("field", f.Name).
					Str("check", string(failure)).
					Str("kind", f.Value.Kind.String()).
					Msg("Field failed validation")
			}
		}
		remaining = slices.DeleteFunc(remaining, func(name string) bool {
			return name == f.Name
		})
	}

	for _, name := range remaining {
		invalid.addField(name)
		fieldFailuresTotal.WithLabelValues(checkMissing).Inc()
		v.logger.Debug().
			Str("customer_id", id).
			Str("field", name).
			Msg("Required field missing")
	}

	if len(invalid.InvalidFields) == 0 {
		return nil, nil
	}

	invalidCustomersTotal.Inc()
	return &invalid, nil
}

// ProcessCustomers validates customers in order and collects the invalid
// ones.
func (v *Validator) ProcessCustomers(customers []Customer, rules schema.RuleSet) (Report, error) {
	var report Report
	for i, c := range customers {
		invalid, err := v.ValidateCustomer(c, rules)
		if err != nil {
			return Report{}, fmt.Errorf("customer %d: %w", i, err)
		}
		if invalid != nil {
			report.add(*invalid)
		}
	}
	return report, nil
}

// ProcessPage compiles a page's validation list and validates its customers.
// The rule set is rebuilt on every call.
func (v *Validator) ProcessPage(customers, validations gjson.Result) (Report, error) {
	rules, err := schema.Compile(validations)
	if err != nil {
		return Report{}, fmt.Errorf("compile rules: %w", err)
	}

	parsed, err := ParseCustomers(customers)
	if err != nil {
		return Report{}, err
	}

	report, err := v.ProcessCustomers(parsed, rules)
	if err != nil {
		return Report{}, err
	}

	v.logger.Debug().
		Int("rules", rules.Len()).
		Int("customers", len(parsed)).
		Int("invalid_customers", len(report.InvalidCustomers)).
		Msg("Page validated")

	return report, nil
}
