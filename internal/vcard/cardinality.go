package vcard

import "strings"

// Cardinality says how many instances of a property a contact may hold.
type Cardinality int

const (
	// Multiple properties may appear any number of times, told apart by PID.
	Multiple Cardinality = iota

	// Single properties appear at most once; setting one replaces it.
	Single
)

func (c Cardinality) String() string {
	if c == Single {
		return "SINGLE"
	}
	return "MULTIPLE"
}

// RFC 6350 properties with cardinality "1" or "*1". Everything else,
// including extension (X-) properties, is MULTIPLE.
var singleProperties = map[string]bool{
	"ANNIVERSARY": true,
	"BDAY":        true,
	"BIRTHPLACE":  true,
	"DEATHDATE":   true,
	"DEATHPLACE":  true,
	"GENDER":      true,
	"KIND":        true,
	"N":           true,
	"PRODID":      true,
	"REV":         true,
	"UID":         true,
	"VERSION":     true,
}

var immutableProperties = map[string]bool{
	"BEGIN":   true,
	"END":     true,
	"VERSION": true,
	"UID":     true,
	"REV":     true,
}

// CardinalityOf returns the cardinality of the named property.
func CardinalityOf(name string) Cardinality {
	if singleProperties[strings.ToUpper(name)] {
		return Single
	}
	return Multiple
}

// IsImmutable reports whether the named property is managed by the store
// and cannot be changed through the mutation API.
func IsImmutable(name string) bool {
	return immutableProperties[strings.ToUpper(name)]
}
