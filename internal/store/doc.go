// Package store provides filesystem-backed storage for contacts and books.
//
// Layout under the data root:
//
//	contacts/<uid>.vcf          canonical contact, one file per UID
//	books/<name>/<uid>.vcf      membership reference (relative symlink to
//	                            ../../contacts/<uid>.vcf)
//
// # Invariants
//
// I1: every canonical file's UID equals its file name.
// I2: every membership reference resolves to a canonical file. A broken
// reference is logged and skipped when a book is read, never matched;
// Check reports it and Repair removes it.
// I5: removing a contact from its last book deletes it. The decision is a
// pure function of a Membership snapshot (Membership.Orphaned) so it can be
// tested without touching the filesystem; callers perform the I/O.
//
// # Book "default"
//
// The default book is created by Open and always exists. It cannot be
// deleted or renamed, and no book can be created or renamed to that name.
//
// # Concurrency
//
// The store assumes a single writer. There is no locking and no fsync;
// multi-step operations are not atomic and a crash between steps can leave a
// dangling reference or an unfiled contact.
package store
