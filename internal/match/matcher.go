package match

import (
	"strings"

	"github.com/roach88/cardbook/internal/vcard"
)

// Matches checks if candidate satisfies filter.
//
// The match is determined by:
// 1. Name: filter.Name must equal candidate.Name
// 2. Parameters: every filter parameter must be present on the candidate
//    (subset test; extra candidate parameters are ignored)
// 3. Value: if the filter value is non-empty once list and structure
//    separators are removed, strict mode requires equal values and forgive
//    mode requires the candidate value to contain the filter value
//
// Returns true only if ALL conditions are satisfied.
func Matches(filter, candidate vcard.Property, forgive bool) bool {
	if filter.Name != candidate.Name {
		return false
	}

	for _, want := range filter.Params {
		if !hasParam(candidate.Params, want) {
			return false
		}
	}

	if stripSeparators(filter.Value) == "" {
		return true
	}
	if forgive {
		return strings.Contains(candidate.Value, filter.Value)
	}
	return candidate.Value == filter.Value
}

// Present returns every property of contact matching filter, in document order.
func Present(filter vcard.Property, contact *vcard.Contact, forgive bool) []vcard.Property {
	var matched []vcard.Property
	for _, p := range contact.Properties() {
		if Matches(filter, p, forgive) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Strict is Matches without forgiveness, shaped for vcard.Contact.Remove.
func Strict(filter, candidate vcard.Property) bool {
	return Matches(filter, candidate, false)
}

// Parameter keys are canonical upper-case; values are compared without
// regard to case (TYPE=HOME and TYPE=home are the same parameter).
func hasParam(params []vcard.Param, want vcard.Param) bool {
	for _, p := range params {
		if p.Key == want.Key && strings.EqualFold(p.Value, want.Value) {
			return true
		}
	}
	return false
}

func stripSeparators(v string) string {
	return strings.NewReplacer(",", "", ";", "").Replace(v)
}
