package vcard

import (
	"errors"
	"io"
	"strings"

	govcard "github.com/emersion/go-vcard"
)

// Decode parses every vCard document in text. Empty text yields no contacts.
// Documents without a VERSION property are given VERSION 4.0 so they can be
// serialized again.
func Decode(text string) ([]*Contact, error) {
	dec := govcard.NewDecoder(strings.NewReader(text))
	var contacts []*Contact
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return contacts, nil
		}
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, fromCard(card))
	}
}

// Encode serializes c, terminated by its own END line.
func Encode(c *Contact) (string, error) {
	var b strings.Builder
	if err := govcard.NewEncoder(&b).Encode(c.card); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeAll serializes every contact back to back with no separator.
func EncodeAll(contacts []*Contact) (string, error) {
	var b strings.Builder
	enc := govcard.NewEncoder(&b)
	for _, c := range contacts {
		if err := enc.Encode(c.card); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
