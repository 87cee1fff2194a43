package book

import (
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/contactbook/internal/config"
)

// Record is one contact: an immutable name, an ordered phone list and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a contact. phones is copied; birthday may be nil.
func NewRecord(name Name, phones []Phone, birthday *Birthday) *Record {
	r := &Record{
		name:   name,
		phones: slices.Clone(phones),
	}
	if birthday != nil {
		b := *birthday
		r.birthday = &b
	}
	return r
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in its current order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Birthday reports the birthday, if one was set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends p. Duplicates are allowed.
func (r *Record) AddPhone(p Phone) {
	r.phones = append(r.phones, p)
}

// DeletePhone removes the first phone equal to p.
func (r *Record) DeletePhone(p Phone) error {
	i := slices.Index(r.phones, p)
	if i < 0 {
		return ErrPhoneNotFound
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces old with replacement. The replacement goes to the end of the list.
func (r *Record) EditPhone(old, replacement Phone) error {
	if err := r.DeletePhone(old); err != nil {
		return err
	}
	r.AddPhone(replacement)
	return nil
}

// SetBirthday sets or replaces the birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// DaysToBirthday counts whole days from the calendar day of now to the next birthday.
// It returns 0 on the birthday itself and false when no birthday is set.
func (r *Record) DaysToBirthday(now time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := r.birthday.NextOccurrence(now)
	return int(next.Sub(today).Hours()) / config.HoursPerDay, true
}

// FormatPhones renders phones as "[p1, p2]".
func FormatPhones(phones []Phone) string {
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return config.PhoneListOpen + strings.Join(parts, config.PhoneSeparator) + config.PhoneListClose
}

// String renders "<name>, [<phones>], <birthday>"; the birthday part is empty when unset.
func (r *Record) String() string {
	bday := ""
	if r.birthday != nil {
		bday = r.birthday.String()
	}
	return r.name.String() + config.RecordSeparator + FormatPhones(r.phones) + config.RecordSeparator + bday
}
