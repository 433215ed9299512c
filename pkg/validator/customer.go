package validator

import (
	"errors"
	"fmt"

	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/schema"
	"github.com/tidwall/gjson"
)

var (
	// ErrMissingID is returned for a customer record without an "id" field.
	ErrMissingID = errors.New("customer has no id")

	// ErrInvalidCustomer is returned when a customer record is not a JSON object.
	ErrInvalidCustomer = errors.New("customer is not an object")
)

// Field is one field of a customer record.
type Field struct {
	Name  string
	Value schema.Value
}

// Customer is a customer record with its fields in document order.
type Customer struct {
	Fields []Field
}

// ParseCustomer decodes a customer object, keeping field order.
func ParseCustomer(r gjson.Result) (Customer, error) {
	if !r.IsObject() {
		return Customer{}, fmt.Errorf("%w: %s", ErrInvalidCustomer, r.Raw)
	}

	var c Customer
	r.ForEach(func(key, value gjson.Result) bool {
		c.Fields = append(c.Fields, Field{Name: key.String(), Value: schema.ValueOf(value)})
		return true
	})
	return c, nil
}

// ParseCustomers decodes a JSON array of customer objects.
func ParseCustomers(r gjson.Result) ([]Customer, error) {
	if !r.IsArray() {
		return nil, fmt.Errorf("customers: expected array, got %s", r.Type)
	}

	items := r.Array()
	customers := make([]Customer, 0, len(items))
	for i, item := range items {
		c, err := ParseCustomer(item)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", i, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// Get returns the value of the named field.
func (c Customer) Get(name string) (schema.Value, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return schema.Value{}, false
}

// ID returns the customer's id rendered as a string.
func (c Customer) ID() (string, error) {
	v, ok := c.Get("id")
	if !ok {
		return "", ErrMissingID
	}
	return v.Text(), nil
}
