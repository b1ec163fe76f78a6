// Package vcard is the contact document model used by the store.
//
// It wraps github.com/emersion/go-vcard with:
//   - Property/Param: a flat, comparable view of one content line
//   - Contact: a document with UID access and the add/replace/remove rules
//     driven by property cardinality (SINGLE replaces, MULTIPLE is keyed by PID)
//   - Decode/Encode: text <-> documents
//
// BEGIN, END, VERSION, UID and REV are managed by the store and rejected by
// Contact.Set and Contact.Remove.
package vcard
