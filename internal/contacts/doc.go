// Package contacts implements the query and mutation API over a contact
// store: finding contacts by property filters, editing their properties,
// creating and deleting them, managing book membership, building tab
// separated indexes, and importing or exporting vCard text.
//
// A Manager performs every operation as a sequence of plain filesystem calls
// against its store. Batch operations fail fast: the first error stops the
// batch, and work already done for earlier items in the same call remains.
//
// Removing a contact from a book applies the orphan rule: a contact that no
// longer belongs to any book is deleted from the canonical store. The
// decision is made from a membership snapshot before any file is touched.
package contacts
