package match

import (
	"fmt"
	"strings"

	"github.com/roach88/cardbook/internal/vcard"
)

// LogicalOperator combines the results of several filters for one contact.
type LogicalOperator int

const (
	// Or selects a contact if any filter matches. It is the default.
	Or LogicalOperator = iota

	// And selects a contact if every filter matches.
	And

	// Not selects a contact if no filter matches.
	Not

	// Xor selects a contact if exactly one filter matches.
	Xor
)

var operatorNames = map[LogicalOperator]string{
	Or:  "or",
	And: "and",
	Not: "not",
	Xor: "xor",
}

// ValidOperators lists the accepted operator names.
var ValidOperators = []string{"or", "and", "not", "xor"}

// ParseOperator parses an operator name, case-insensitively.
func ParseOperator(s string) (LogicalOperator, error) {
	for op, name := range operatorNames {
		if strings.EqualFold(s, name) {
			return op, nil
		}
	}
	return Or, fmt.Errorf("invalid logical operator %q: must be one of %v", s, ValidOperators)
}

// String implements fmt.Stringer and pflag.Value.
func (o LogicalOperator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("LogicalOperator(%d)", int(o))
}

// Set implements pflag.Value.
func (o *LogicalOperator) Set(s string) error {
	op, err := ParseOperator(s)
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Type implements pflag.Value.
func (o *LogicalOperator) Type() string {
	return "operator"
}

// Select returns the contacts satisfying filters combined with op, in input
// order.
//
// Filters are evaluated in the order given. For Xor the number of matching
// filters is counted incrementally; a second match excludes the contact.
func Select(contacts []*vcard.Contact, filters []vcard.Property, op LogicalOperator, forgive bool) []*vcard.Contact {
	var selected []*vcard.Contact
	for _, c := range contacts {
		if selects(c, filters, op, forgive) {
			selected = append(selected, c)
		}
	}
	return selected
}

func selects(c *vcard.Contact, filters []vcard.Property, op LogicalOperator, forgive bool) bool {
	matched := func(f vcard.Property) bool {
		return len(Present(f, c, forgive)) > 0
	}

	switch op {
	case And:
		// An empty conjunction selects nothing so And stays a subset of Or.
		if len(filters) == 0 {
			return false
		}
		for _, f := range filters {
			if !matched(f) {
				return false
			}
		}
		return true
	case Not:
		for _, f := range filters {
			if matched(f) {
				return false
			}
		}
		return true
	case Xor:
		count := 0
		for _, f := range filters {
			if matched(f) {
				count++
				if count > 1 {
					return false
				}
			}
		}
		return count == 1
	default:
		for _, f := range filters {
			if matched(f) {
				return true
			}
		}
		return false
	}
}
