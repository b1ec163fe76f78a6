package vcard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	govcard "github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
)

// Version is the vCard version written for new contacts.
const Version = "4.0"

// RevisionLayout is the timestamp format of the REV property.
const RevisionLayout = "20060102T150405Z"

// Contact is one vCard document.
type Contact struct {
	card govcard.Card
}

// NewContact creates a contact with the given full name and UID.
func NewContact(fullName string, uid uuid.UUID) *Contact {
	card := make(govcard.Card)
	card.SetValue(govcard.FieldVersion, Version)
	card.SetValue(govcard.FieldFormattedName, fullName)
	card.SetValue(govcard.FieldUID, uid.String())
	return &Contact{card: card}
}

func fromCard(card govcard.Card) *Contact {
	if card.Get(govcard.FieldVersion) == nil {
		card.SetValue(govcard.FieldVersion, Version)
	}
	return &Contact{card: card}
}

// Properties returns every property of the contact: VERSION first, then
// the remaining names in sorted order, instances in document order. This is
// the order in which the contact is serialized.
func (c *Contact) Properties() []Property {
	names := make([]string, 0, len(c.card))
	for k := range c.card {
		if !strings.EqualFold(k, govcard.FieldVersion) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	if _, ok := c.card[govcard.FieldVersion]; ok {
		names = append([]string{govcard.FieldVersion}, names...)
	}

	var props []Property
	for _, name := range names {
		for _, f := range c.card[name] {
			props = append(props, propertyFromField(name, f))
		}
	}
	return props
}

// Get returns every instance of the named property.
func (c *Contact) Get(name string) []Property {
	name = strings.ToUpper(name)
	var props []Property
	for _, f := range c.card[name] {
		props = append(props, propertyFromField(name, f))
	}
	return props
}

// FullNames returns every FN value.
func (c *Contact) FullNames() []string {
	var names []string
	for _, f := range c.card[govcard.FieldFormattedName] {
		names = append(names, f.Value)
	}
	return names
}

// UID returns the contact's identifier. A contact without a UID property is
// corrupt and yields CodeMissingUID; an unparsable one CodeInvalidIdentifier.
func (c *Contact) UID() (uuid.UUID, error) {
	f := c.card.Get(govcard.FieldUID)
	if f == nil {
		return uuid.Nil, cmerr.New(cmerr.CodeMissingUID, "contact %q has no UID property", c.displayName())
	}
	uid, err := uuid.Parse(strings.TrimSpace(f.Value))
	if err != nil {
		return uuid.Nil, cmerr.Wrap(cmerr.CodeInvalidIdentifier, err, "contact %q has invalid UID %q", c.displayName(), f.Value)
	}
	return uid, nil
}

// SetUID replaces the UID property.
func (c *Contact) SetUID(uid uuid.UUID) {
	c.card.SetValue(govcard.FieldUID, uid.String())
}

// Touch stamps the REV property with t.
func (c *Contact) Touch(t time.Time) {
	c.card.SetValue(govcard.FieldRevision, t.UTC().Format(RevisionLayout))
}

// Set adds or replaces a property and returns the stored instance.
//
// SINGLE properties replace any existing instance. MULTIPLE properties
// replace the instance carrying the same PID if there is one; otherwise they
// are appended, and a property without PID is assigned the next free PID so
// callers can target it later.
func (c *Contact) Set(p Property) (Property, error) {
	name := strings.ToUpper(p.Name)
	p.Name = name
	if IsImmutable(name) {
		return Property{}, cmerr.New(cmerr.CodeImmutableProperty, "property %s cannot be modified", name)
	}

	if CardinalityOf(name) == Single {
		c.card[name] = []*govcard.Field{p.field()}
		return p, nil
	}

	pid := p.PID()
	if pid == "" {
		p = p.WithParam(ParamPID, strconv.Itoa(c.nextPID(name)))
	} else {
		for i, f := range c.card[name] {
			if propertyFromField(name, f).PID() == pid {
				c.card[name][i] = p.field()
				return p, nil
			}
		}
	}
	c.card[name] = append(c.card[name], p.field())
	return p, nil
}

// Remove deletes instances of p's property and returns how many were removed.
//
// A SINGLE property is removed by name. For a MULTIPLE property the instance
// with p's PID is removed when p carries one; otherwise every instance for
// which matches(p, instance) holds is removed.
func (c *Contact) Remove(p Property, matches func(filter, candidate Property) bool) (int, error) {
	name := strings.ToUpper(p.Name)
	if IsImmutable(name) {
		return 0, cmerr.New(cmerr.CodeImmutableProperty, "property %s cannot be modified", name)
	}
	fields := c.card[name]
	if CardinalityOf(name) == Single {
		delete(c.card, name)
		return len(fields), nil
	}

	pid := p.PID()
	var kept []*govcard.Field
	for _, f := range fields {
		candidate := propertyFromField(name, f)
		var drop bool
		if pid != "" {
			drop = candidate.PID() == pid
		} else {
			drop = matches(p, candidate)
		}
		if !drop {
			kept = append(kept, f)
		}
	}
	removed := len(fields) - len(kept)
	if len(kept) == 0 {
		delete(c.card, name)
	} else {
		c.card[name] = kept
	}
	return removed, nil
}

// nextPID returns one more than the largest PID source number in use.
// A PID of "2.1" counts as 2.
func (c *Contact) nextPID(name string) int {
	highest := 0
	for _, f := range c.card[name] {
		for _, pm := range propertyFromField(name, f).Params {
			if pm.Key != ParamPID {
				continue
			}
			major, _, _ := strings.Cut(pm.Value, ".")
			if n, err := strconv.Atoi(major); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest + 1
}

func (c *Contact) displayName() string {
	if names := c.FullNames(); len(names) > 0 {
		return names[0]
	}
	return fmt.Sprintf("<%d properties>", len(c.card))
}
