package vcard

import (
	"fmt"
	"sort"
	"strings"

	govcard "github.com/emersion/go-vcard"

	"github.com/roach88/cardbook/internal/cmerr"
)

// ParamPID is the parameter distinguishing instances of a MULTIPLE property.
const ParamPID = "PID"

// Param is a single (key, value) parameter pair.
// A parameter with several comma-separated values is flattened into one
// Param per value.
type Param struct {
	Key   string
	Value string
}

// Property is one content line of a contact.
//
// Name is the canonical upper-case property name. Params is kept sorted by
// key, values in document order, so two properties with the same parameter
// set compare equal regardless of how they were written.
type Property struct {
	Group  string
	Name   string
	Params []Param
	Value  string
}

// NewProperty creates a property with the given name and value and no parameters.
func NewProperty(name, value string) Property {
	return Property{Name: strings.ToUpper(name), Value: value}
}

func propertyFromField(name string, f *govcard.Field) Property {
	p := Property{Group: f.Group, Name: strings.ToUpper(name), Value: f.Value}
	keys := make([]string, 0, len(f.Params))
	for k := range f.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range f.Params[k] {
			p.Params = append(p.Params, Param{Key: strings.ToUpper(k), Value: v})
		}
	}
	return p
}

func (p Property) field() *govcard.Field {
	f := &govcard.Field{Value: p.Value, Group: p.Group}
	if len(p.Params) > 0 {
		f.Params = make(govcard.Params)
		for _, pm := range p.Params {
			f.Params.Add(pm.Key, pm.Value)
		}
	}
	return f
}

// Param returns the first value of the parameter with the given key.
func (p Property) Param(key string) (string, bool) {
	key = strings.ToUpper(key)
	for _, pm := range p.Params {
		if pm.Key == key {
			return pm.Value, true
		}
	}
	return "", false
}

// PID returns the PID parameter value, or "" if the property has none.
func (p Property) PID() string {
	v, _ := p.Param(ParamPID)
	return v
}

// WithParam returns a copy of p with key set to the single value v.
func (p Property) WithParam(key, v string) Property {
	key = strings.ToUpper(key)
	out := p
	out.Params = nil
	for _, pm := range p.Params {
		if pm.Key != key {
			out.Params = append(out.Params, pm)
		}
	}
	out.Params = append(out.Params, Param{Key: key, Value: v})
	sort.SliceStable(out.Params, func(i, j int) bool { return out.Params[i].Key < out.Params[j].Key })
	return out
}

// String renders the property as a content line without folding or escaping.
func (p Property) String() string {
	var b strings.Builder
	if p.Group != "" {
		b.WriteString(p.Group)
		b.WriteByte('.')
	}
	b.WriteString(p.Name)
	for _, pm := range p.Params {
		b.WriteByte(';')
		b.WriteString(pm.Key)
		b.WriteByte('=')
		b.WriteString(pm.Value)
	}
	b.WriteByte(':')
	b.WriteString(p.Value)
	return b.String()
}

// ParseProperty parses a single content line such as "TEL;TYPE=home:555-1111".
//
// A bare name ("EMAIL") is read as a property with an empty value. Trailing
// line terminators are ignored; any other line break is rejected.
func ParseProperty(text string) (Property, error) {
	line := strings.TrimLeft(strings.TrimRight(text, "\r\n"), " \t")
	if strings.ContainsAny(line, "\r\n") {
		return Property{}, malformedProperty(text, fmt.Errorf("property spans several lines"))
	}
	name := propertyName(line)
	if !validName(name) {
		return Property{}, malformedProperty(text, fmt.Errorf("invalid property name %q", name))
	}
	if name == "BEGIN" || name == "END" {
		return Property{}, malformedProperty(text, fmt.Errorf("%s delimits documents and is not a property", name))
	}
	if !strings.Contains(line, ":") {
		line += ":"
	}

	doc := "BEGIN:VCARD\r\nVERSION:4.0\r\n" + line + "\r\nEND:VCARD\r\n"
	card, err := govcard.NewDecoder(strings.NewReader(doc)).Decode()
	if err != nil {
		return Property{}, malformedProperty(text, err)
	}
	var fields []*govcard.Field
	for k, fs := range card {
		if strings.EqualFold(k, name) {
			fields = fs
		}
	}
	if len(fields) == 0 {
		return Property{}, malformedProperty(text, fmt.Errorf("property %s not recognized", name))
	}
	// VERSION filters come after the synthetic VERSION line.
	return propertyFromField(name, fields[len(fields)-1]), nil
}

// ParseProperties parses every text in order and fails on the first one
// that is not a valid content line.
func ParseProperties(texts []string) ([]Property, error) {
	props := make([]Property, 0, len(texts))
	for _, t := range texts {
		p, err := ParseProperty(t)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

func propertyName(line string) string {
	end := strings.IndexAny(line, ";:")
	if end < 0 {
		end = len(line)
	}
	name := line[:end]
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(strings.TrimSpace(name))
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

func malformedProperty(text string, err error) error {
	return &cmerr.Error{
		Code:    cmerr.CodeMalformedDocument,
		Message: fmt.Sprintf("invalid property %q", text),
		Content: text,
		Err:     err,
	}
}
