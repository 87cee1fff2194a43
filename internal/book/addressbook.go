package book

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tartampluch/contactbook/internal/config"
)

// AddressBook is a collection of records keyed by name.
// Iteration, display and serialization follow insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	order   []string
	records map[string]*Record
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add inserts r. A record with the same name is never overwritten: Add returns
// ErrContactExists and leaves the book untouched.
func (b *AddressBook) Add(r *Record) error {
	key := r.Name().String()
	if _, ok := b.records[key]; ok {
		return fmt.Errorf("%w: %s", ErrContactExists, key)
	}
	b.records[key] = r
	b.order = append(b.order, key)
	return nil
}

// Get looks a record up by name.
func (b *AddressBook) Get(name Name) (*Record, bool) {
	r, ok := b.records[name.String()]
	return r, ok
}

// Remove deletes the record called name.
func (b *AddressBook) Remove(name Name) error {
	key := name.String()
	if _, ok := b.records[key]; !ok {
		return fmt.Errorf("%w: %s", ErrContactNotFound, key)
	}
	delete(b.records, key)
	if i := slices.Index(b.order, key); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
	return nil
}

func (b *AddressBook) Len() int { return len(b.order) }

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Search returns the records whose printed form contains param, ignoring case.
// The whole printed record is searched, so phones and birthdays match as well as names.
// The minimum length counts characters, not bytes.
func (b *AddressBook) Search(param string) ([]*Record, error) {
	if utf8.RuneCountInString(param) < config.MinSearchLength {
		return nil, ErrQueryTooShort
	}
	needle := strings.ToLower(param)

	var found []*Record
	for _, r := range b.Records() {
		if strings.Contains(strings.ToLower(r.String()), needle) {
			found = append(found, r)
		}
	}
	return found, nil
}

// Pages splits the book into pages of at most size records, in insertion order.
// Every range over the returned sequence starts again from the first record.
func (b *AddressBook) Pages(size int) (iter.Seq[[]*Record], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	return func(yield func([]*Record) bool) {
		for start := 0; start < len(b.order); start += size {
			end := min(start+size, len(b.order))
			page := make([]*Record, 0, end-start)
			for _, key := range b.order[start:end] {
				page = append(page, b.records[key])
			}
			if !yield(page) {
				return
			}
		}
	}, nil
}

// String renders one record per line.
func (b *AddressBook) String() string {
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, config.LineSeparator)
}
