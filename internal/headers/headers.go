package headers

import (
	"bytes"
	"iter"
	"strings"

	"github.com/shravanasati/reqdump/internal/bytesconv"
)

// trimset is the whitespace stripped from both ends of a field name and value.
const trimset = " \t\r\n"

// Field is a single header field line. Name and Value usually point into the
// buffer the field was parsed from.
type Field struct {
	Name  string
	Value string
}

// Headers is an ordered collection of header fields. Duplicate names are kept
// in the order they were added.
type Headers struct {
	fields []Field
}

// ParseFieldLine splits a field line at its first colon. Both halves are
// trimmed of surrounding whitespace. No character validation is done.
func ParseFieldLine(data []byte) (Field, error) {
	colonPos := bytes.IndexByte(data, ':')
	if colonPos == -1 {
		// colon not found
		return Field{}, ErrMalformedHeader
	}

	hkey := bytes.Trim(data[:colonPos], trimset)
	hvalue := bytes.Trim(data[colonPos+1:], trimset)

	return Field{Name: bytesconv.String(hkey), Value: bytesconv.String(hvalue)}, nil
}

// Add appends a header field.
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Get returns the first field whose name matches exactly.
func (h *Headers) Get(name string) (Field, bool) {
	for _, f := range h.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// GetFold is Get with case-insensitive name matching.
func (h *Headers) GetFold(name string) (Field, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// ValuesFold returns every value stored under name, matched
// case-insensitively, in insertion order.
func (h *Headers) ValuesFold(name string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

// All returns an iterator over all fields in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range h.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Fields returns a copy of the field list.
func (h *Headers) Fields() []Field {
	out := make([]Field, len(h.fields))
	copy(out, h.fields)
	return out
}

// Len returns the number of fields.
func (h *Headers) Len() int {
	return len(h.fields)
}

// Clone returns a deep copy whose strings do not share memory with any
// parse buffer.
func (h *Headers) Clone() *Headers {
	c := &Headers{fields: make([]Field, len(h.fields))}
	for i, f := range h.fields {
		c.fields[i] = Field{Name: strings.Clone(f.Name), Value: strings.Clone(f.Value)}
	}
	return c
}

// NewHeaders creates an empty Headers.
func NewHeaders() *Headers {
	return &Headers{}
}
