package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/contacts"
	"github.com/roach88/cardbook/internal/match"
	"github.com/roach88/cardbook/internal/store"
	"github.com/roach88/cardbook/internal/testutil"
	"github.com/roach88/cardbook/internal/vcard"
)

// Harness runs scenario steps against one manager.
type Harness struct {
	manager *contacts.Manager
	root    string
	scratch string
}

var (
	uidRef = regexp.MustCompile(`\$(\d+)`)
	seqUID = regexp.MustCompile(`00000000-0000-7000-8000-(\d{12})`)
)

// Run executes a scenario against a fresh store in a temporary directory.
//
// Identifiers come from testutil.SequentialUIDs and timestamps from
// testutil.FixedClock, so two runs of the same scenario produce the same
// result.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "cm-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	root := filepath.Join(dir, "data")
	st, err := store.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	h := &Harness{
		manager: contacts.New(st,
			contacts.WithUIDGenerator(testutil.NewSequentialUIDs()),
			contacts.WithClock(testutil.NewFixedClock(testutil.DefaultEpoch)),
		),
		root:    root,
		scratch: dir,
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		out, err := h.execute(i, step)

		sr := StepResult{Op: step.Op, Output: h.abbreviate(out)}
		if err != nil {
			sr.Error = string(cmerr.CodeOf(err))
		}
		result.Steps = append(result.Steps, sr)

		checkExpect(result, i, step, sr, err)
	}
	return result, nil
}

func checkExpect(result *Result, i int, step Step, sr StepResult, err error) {
	want := step.Expect
	if want == nil || want.Error == "" {
		if err != nil {
			result.AddError(fmt.Sprintf("step %d (%s): unexpected error: %v", i+1, step.Op, err))
			return
		}
	} else if sr.Error != want.Error {
		result.AddError(fmt.Sprintf("step %d (%s): error = %q, want %q", i+1, step.Op, sr.Error, want.Error))
		return
	}

	if want != nil && want.Output != nil && !slices.Equal(sr.Output, want.Output) {
		result.AddError(fmt.Sprintf("step %d (%s): output = %q, want %q", i+1, step.Op, sr.Output, want.Output))
	}
}

func (h *Harness) execute(i int, step Step) ([]string, error) {
	m := h.manager

	props, err := vcard.ParseProperties(step.Properties)
	if err != nil {
		return nil, err
	}
	uids, err := parseUIDs(step.UIDs)
	if err != nil {
		return nil, err
	}

	switch step.Op {
	case OpCreateBook:
		return nil, m.CreateBook(step.Book)

	case OpDeleteBook:
		return nil, m.DeleteBook(step.Book)

	case OpRenameBook:
		return nil, m.RenameBook(step.Book, step.To)

	case OpListBooks:
		return m.Books(step.Pattern)

	case OpCreateContact:
		created, err := m.CreateContact(step.Book, step.Names)
		return uidStrings(created), err

	case OpDeleteContacts:
		return nil, m.DeleteContacts(uids)

	case OpAddToBook:
		return nil, m.AddToBook(step.Book, uids)

	case OpRemoveFromBook:
		return nil, m.RemoveFromBook(step.Book, uids)

	case OpFind:
		op := match.Or
		if step.Operator != "" {
			if op, err = match.ParseOperator(step.Operator); err != nil {
				return nil, err
			}
		}
		found, err := m.FindUIDs(step.Book, props, op, step.Forgive)
		return uidStrings(found), err

	case OpShow:
		if len(uids) == 0 {
			if uids, err = h.all(step.Book); err != nil {
				return nil, err
			}
		}
		sets, err := m.FindProperties(props, uids, step.Forgive)
		return setLines(sets), err

	case OpSet:
		sets, err := m.AddOrReplaceProperty(props, uids)
		return setLines(sets), err

	case OpUnset:
		return nil, m.DeleteProperties(props, uids)

	case OpIndex:
		return m.GenerateIndex(step.Book, props)

	case OpImport:
		path := filepath.Join(h.scratch, fmt.Sprintf("import-%d.vcf", i+1))
		content := uidRef.ReplaceAllStringFunc(step.Content, expandRef)
		content = strings.ReplaceAll(strings.ReplaceAll(content, "\r\n", "\n"), "\n", "\r\n")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return nil, err
		}
		imported, err := m.Import(path, step.Book)
		return uidStrings(imported), err

	case OpExport:
		// Field order inside an exported card is not stable, so only the
		// exported identifiers are reported.
		text, err := m.Export(step.Book)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return []string{}, nil
		}
		cards, err := vcard.Decode(text)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, c := range cards {
			uid, err := c.UID()
			if err != nil {
				return nil, err
			}
			out = append(out, uid.String())
		}
		return out, nil

	case OpRead:
		cards, err := m.Store().ReadByUID(uids)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, c := range cards {
			if len(props) == 0 {
				out = append(out, propertyLines(c.Properties())...)
				continue
			}
			for _, p := range props {
				out = append(out, propertyLines(c.Get(p.Name))...)
			}
		}
		return out, nil

	case OpCheck, OpRepair:
		check := m.Check
		if step.Op == OpRepair {
			check = m.Repair
		}
		report, err := check()
		if err != nil {
			return nil, err
		}
		return reportLines(report), nil
	}

	return nil, fmt.Errorf("unknown op %q", step.Op)
}

// all lists the identifiers of every contact in book.
func (h *Harness) all(book string) ([]uuid.UUID, error) {
	cards, err := h.manager.Contacts(book)
	if err != nil {
		return nil, err
	}
	uids := make([]uuid.UUID, 0, len(cards))
	for _, c := range cards {
		uid, err := c.UID()
		if err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

// abbreviate rewrites generated identifiers as "$n" and the store root as
// "<root>" so output can be compared across runs.
func (h *Harness) abbreviate(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, h.root, "<root>")
		out[i] = seqUID.ReplaceAllStringFunc(line, func(s string) string {
			n, _ := strconv.Atoi(seqUID.FindStringSubmatch(s)[1])
			return "$" + strconv.Itoa(n)
		})
	}
	return out
}

func expandRef(ref string) string {
	n, _ := strconv.Atoi(ref[1:])
	return testutil.UID(n).String()
}

func parseUIDs(refs []string) ([]uuid.UUID, error) {
	uids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		text := uidRef.ReplaceAllStringFunc(ref, expandRef)
		uid, err := uuid.Parse(text)
		if err != nil {
			return nil, cmerr.Wrap(cmerr.CodeInvalidIdentifier, err, "invalid UID %q", ref)
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

func uidStrings(uids []uuid.UUID) []string {
	if uids == nil {
		return nil
	}
	out := make([]string, len(uids))
	for i, uid := range uids {
		out[i] = uid.String()
	}
	return out
}

func setLines(sets []contacts.PropertySet) []string {
	out := []string{}
	for _, s := range sets {
		for _, p := range s.Properties {
			out = append(out, s.UID.String()+"\t"+p.String())
		}
	}
	return out
}

func propertyLines(props []vcard.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.String())
	}
	return out
}

func reportLines(r *store.Report) []string {
	out := []string{}
	for _, ref := range r.BrokenReferences {
		out = append(out, "broken reference: "+ref.Book+"/"+ref.UID.String())
	}
	for _, path := range r.MismatchedFiles {
		out = append(out, "name does not match UID: "+path)
	}
	for _, path := range r.MalformedFiles {
		out = append(out, "not valid vCard: "+path)
	}
	for _, uid := range r.Unfiled {
		out = append(out, "in no book: "+uid.String())
	}
	if r.Repaired > 0 {
		out = append(out, fmt.Sprintf("removed %d broken reference(s)", r.Repaired))
	}
	return out
}
