package validator

// InvalidCustomer lists the fields of one customer that failed validation or
// were required but missing, in the order they were found.
type InvalidCustomer struct {
	ID            string   `json:"id"`
	InvalidFields []string `json:"invalid_fields"`
}

func (ic *InvalidCustomer) addField(name string) {
	ic.InvalidFields = append(ic.InvalidFields, name)
}

// Report is the validation result for one page.
type Report struct {
	InvalidCustomers []InvalidCustomer `json:"invalid_customers,omitempty"`
}

func (r *Report) add(ic InvalidCustomer) {
	r.InvalidCustomers = append(r.InvalidCustomers, ic)
}

// Empty reports whether no customer on the page was invalid.
func (r Report) Empty() bool {
	return len(r.InvalidCustomers) == 0
}

// InvalidFieldCount returns the total number of invalid field entries.
func (r Report) InvalidFieldCount() int {
	n := 0
	for _, ic := range r.InvalidCustomers {
		n += len(ic.InvalidFields)
	}
	return n
}
