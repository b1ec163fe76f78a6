// Package match selects contacts by property filters.
//
// A filter is a vcard.Property used as a pattern: its name is required, its
// parameters constrain the candidate's parameters as a subset, and its value,
// when non-empty, must equal (or, in forgive mode, be contained in) the
// candidate's value.
//
// Matches and Present work on single properties and contacts. Select applies
// a LogicalOperator across a list of filters for every contact and keeps the
// input order. Matching never fails: filter text is parsed, and rejected,
// before any contact is scanned.
package match
