package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPatchNotObject is returned when an update body is not a JSON object.
var ErrPatchNotObject = errors.New("update body must be a JSON object")

// PatchField is one key of a partial update, with its undecoded value.
type PatchField struct {
	Name  string
	Value json.RawMessage
}

// Patch is a partial update body that keeps keys in the order they were
// received. A repeated key keeps its first position and takes the last value.
type Patch struct {
	fields []PatchField
}

func NewPatch(fields ...PatchField) Patch {
	var p Patch
	for _, f := range fields {
		p.set(f.Name, f.Value)
	}
	return p
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Patch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrPatchNotObject
	}

	p.fields = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		p.set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the fields back in insertion order.
func (p Patch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Patch) set(name string, value json.RawMessage) {
	for i := range p.fields {
		if p.fields[i].Name == name {
			p.fields[i].Value = value
			return
		}
	}
	p.fields = append(p.fields, PatchField{Name: name, Value: value})
}

func (p Patch) Fields() []PatchField {
	return p.fields
}

func (p Patch) Len() int {
	return len(p.fields)
}

func (p Patch) Get(name string) (json.RawMessage, bool) {
	for _, f := range p.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Column is a validated column assignment for a dynamic update.
type Column struct {
	Name  string
	Value interface{}
}
