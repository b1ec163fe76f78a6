package cli

import (
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/vcard"
)

// parseUIDs parses contact identifiers given on the command line.
func parseUIDs(args []string) ([]uuid.UUID, error) {
	uids := make([]uuid.UUID, 0, len(args))
	for _, a := range args {
		uid, err := uuid.Parse(strings.TrimSpace(a))
		if err != nil {
			return nil, cmerr.Wrap(cmerr.CodeInvalidIdentifier, err, "invalid UID %q", a)
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

// parseFilters parses property arguments such as "TEL;TYPE=home:555" or "EMAIL".
func parseFilters(args []string) ([]vcard.Property, error) {
	return vcard.ParseProperties(args)
}

func uidStrings(uids []uuid.UUID) []string {
	out := make([]string, len(uids))
	for i, uid := range uids {
		out[i] = uid.String()
	}
	return out
}
