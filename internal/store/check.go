package store

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/vcard"
)

// Reference names one membership reference.
type Reference struct {
	Book string    `json:"book"`
	UID  uuid.UUID `json:"uid"`
}

// Report is the result of a consistency check.
type Report struct {
	// BrokenReferences do not resolve to a canonical file.
	BrokenReferences []Reference `json:"broken_references"`

	// MismatchedFiles are canonical files whose name is not "<uid>.vcf" for
	// the UID they contain.
	MismatchedFiles []string `json:"mismatched_files"`

	// MalformedFiles are canonical files that do not parse.
	MalformedFiles []string `json:"malformed_files"`

	// Unfiled contacts exist in the store but in no book.
	Unfiled []uuid.UUID `json:"unfiled"`

	// Repaired counts the broken references removed by Repair.
	Repaired int `json:"repaired"`
}

// Clean reports whether no problem was found.
func (r *Report) Clean() bool {
	return len(r.BrokenReferences) == 0 &&
		len(r.MismatchedFiles) == 0 &&
		len(r.MalformedFiles) == 0 &&
		len(r.Unfiled) == 0
}

// Check scans the store for invariant violations without changing anything.
func (s *Store) Check() (*Report, error) {
	report := &Report{
		BrokenReferences: []Reference{},
		MismatchedFiles:  []string{},
		MalformedFiles:   []string{},
		Unfiled:          []uuid.UUID{},
	}

	dir := s.contactsPath()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cmerr.IO(dir, err, "list contacts")
	}
	var canonical []uuid.UUID
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		path := filepath.Join(dir, e.Name())
		named, ok := uidFromFileName(e.Name())
		if !ok {
			report.MismatchedFiles = append(report.MismatchedFiles, path)
			continue
		}
		canonical = append(canonical, named)

		b, err := os.ReadFile(path)
		if err != nil {
			return nil, cmerr.IO(path, err, "read contact")
		}
		contacts, err := vcard.Decode(string(b))
		if err != nil {
			report.MalformedFiles = append(report.MalformedFiles, path)
			continue
		}
		if len(contacts) != 1 {
			report.MismatchedFiles = append(report.MismatchedFiles, path)
			continue
		}
		if uid, err := contacts[0].UID(); err != nil || uid != named {
			report.MismatchedFiles = append(report.MismatchedFiles, path)
		}
	}

	membership, err := s.Membership()
	if err != nil {
		return nil, err
	}
	books, err := s.BookNames("")
	if err != nil {
		return nil, err
	}
	for _, book := range books {
		uids, err := s.MemberUIDs(book)
		if err != nil {
			return nil, err
		}
		for _, uid := range uids {
			if _, err := os.Stat(s.memberPath(book, uid)); err != nil {
				report.BrokenReferences = append(report.BrokenReferences, Reference{Book: book, UID: uid})
			}
		}
	}

	for _, uid := range canonical {
		if membership.Orphaned(uid) {
			report.Unfiled = append(report.Unfiled, uid)
		}
	}
	return report, nil
}

// Repair runs Check and removes every broken reference it finds.
// Other findings are reported but left for the user to resolve.
func (s *Store) Repair() (*Report, error) {
	report, err := s.Check()
	if err != nil {
		return nil, err
	}
	for _, ref := range report.BrokenReferences {
		if _, err := s.RemoveMember(ref.Book, ref.UID); err != nil {
			return report, err
		}
		slog.Info("removed broken reference", "book", ref.Book, "uid", ref.UID)
		report.Repaired++
	}
	return report, nil
}
