// Package page decodes customer page documents and renders the per-page
// report.
package page

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/validator"
	"github.com/tidwall/gjson"
)

var (
	// ErrMalformed is returned when a page document is not a valid JSON object.
	ErrMalformed = errors.New("malformed page document")

	// ErrMissingKey is returned when a page document lacks an expected key.
	ErrMissingKey = errors.New("missing key")
)

// Top-level keys of a page document.
const (
	KeyCustomers   = "customers"
	KeyValidations = "validations"
	KeyPagination  = "pagination"
)

// Pagination describes where a page sits in the customer listing.
type Pagination struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// Page is one decoded page document.
type Page struct {
	Customers   gjson.Result
	Validations gjson.Result
	Pagination  Pagination

	rawPagination gjson.Result
}

// Decode parses a page document. The customers, validations and pagination
// keys are all required.
func Decode(data []byte) (*Page, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrMalformed, root.Type)
	}

	p := &Page{}
	var err error

	if p.Customers, err = require(root, KeyCustomers); err != nil {
		return nil, err
	}
	if !p.Customers.IsArray() {
		return nil, fmt.Errorf("%w: %s is not an array", ErrMalformed, KeyCustomers)
	}

	if p.Validations, err = require(root, KeyValidations); err != nil {
		return nil, err
	}

	if p.rawPagination, err = require(root, KeyPagination); err != nil {
		return nil, err
	}
	if p.Pagination, err = decodePagination(p.rawPagination); err != nil {
		return nil, err
	}

	return p, nil
}

func require(obj gjson.Result, key string) (gjson.Result, error) {
	r := obj.Get(key)
	if !r.Exists() {
		return r, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return r, nil
}

func decodePagination(r gjson.Result) (Pagination, error) {
	if !r.IsObject() {
		return Pagination{}, fmt.Errorf("%w: %s is not an object", ErrMalformed, KeyPagination)
	}

	var fields [3]int
	for i, key := range []string{"total", "current_page", "per_page"} {
		v, err := require(r, key)
		if err != nil {
			return Pagination{}, fmt.Errorf("%s: %w", KeyPagination, err)
		}
		if v.Type != gjson.Number {
			return Pagination{}, fmt.Errorf("%w: %s.%s is not a number", ErrMalformed, KeyPagination, key)
		}
		fields[i] = int(v.Int())
	}

	return Pagination{Total: fields[0], CurrentPage: fields[1], PerPage: fields[2]}, nil
}

// Output is the document written for each processed page. Customers and
// Pagination echo the page's input.
type Output struct {
	InvalidCustomers []validator.InvalidCustomer `json:"invalid_customers,omitempty"`
	Customers        json.RawMessage             `json:"customers"`
	Pagination       json.RawMessage             `json:"pagination"`
}

// NewOutput combines a page with its validation report.
func NewOutput(p *Page, report validator.Report) Output {
	return Output{
		InvalidCustomers: report.InvalidCustomers,
		Customers:        json.RawMessage(p.Customers.Raw),
		Pagination:       json.RawMessage(p.rawPagination.Raw),
	}
}

// Write encodes the output as a single JSON line.
func (o Output) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
