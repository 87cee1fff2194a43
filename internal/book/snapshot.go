package book

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tartampluch/contactbook/internal/config"
)

// recordJSON is the persisted shape of one record:
// {"name": "Nick", "phones": ["8976237632"], "bday": "25 November 2003"}.
// A missing birthday is written as null.
type recordJSON struct {
	Name     *string  `json:"name"`
	Phones   []string `json:"phones"`
	Birthday *string  `json:"bday"`
}

func toJSON(r *Record) recordJSON {
	name := r.Name().String()
	out := recordJSON{
		Name:   &name,
		Phones: make([]string, 0, len(r.phones)),
	}
	for _, p := range r.phones {
		out.Phones = append(out.Phones, p.String())
	}
	if b, ok := r.Birthday(); ok {
		s := b.String()
		out.Birthday = &s
	}
	return out
}

func (rj recordJSON) record() (*Record, error) {
	if rj.Name == nil || rj.Phones == nil {
		return nil, fmt.Errorf("%w: record without name or phones", ErrMalformedSnapshot)
	}
	name, err := NewName(*rj.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	phones := make([]Phone, 0, len(rj.Phones))
	for _, raw := range rj.Phones {
		p, err := NewPhone(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedSnapshot, name, err)
		}
		phones = append(phones, p)
	}

	var bday *Birthday
	if rj.Birthday != nil && *rj.Birthday != config.NoBirthdayLegacy {
		b, err := ParseBirthday(*rj.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedSnapshot, name, err)
		}
		bday = &b
	}

	return NewRecord(name, phones, bday), nil
}

// MarshalJSON writes the book as an object keyed by contact name, keeping insertion order.
func (b *AddressBook) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range b.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name().String())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(toJSON(r))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the content of b with the records of data, in document order.
// Each record is validated; on error b is left unchanged.
func (b *AddressBook) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	loaded := New()
	for dec.More() {
		// Object keys duplicate the "name" field; the field is authoritative.
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
		}

		var rj recordJSON
		if err := dec.Decode(&rj); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
		}
		r, err := rj.record()
		if err != nil {
			return err
		}
		if err := loaded.Add(r); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	*b = *loaded
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedSnapshot, want, tok)
	}
	return nil
}
