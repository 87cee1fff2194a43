package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/contactbook/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name is the unique key of a contact. The zero value is not a valid name.
type Name struct {
	value string
}

// NewName validates a contact name. Surrounding whitespace is dropped.
func NewName(value string) (Name, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}, ErrInvalidName
	}
	return Name{value: v}, nil
}

// CanonicalName builds a Name from user input: inner whitespace is collapsed and
// each word is capitalized, so that lower-cased commands find the stored contact.
func CanonicalName(raw string) (Name, error) {
	// A Caser is stateful, so each call gets its own.
	return NewName(cases.Title(language.Und).String(strings.Join(strings.Fields(raw), config.ArgSeparator)))
}

func (n Name) String() string { return n.value }

// Phone is a phone number of more than five characters.
// It does not enforce digits; callers sanitize raw input with SanitizePhone.
type Phone struct {
	value string
}

// NewPhone validates the length of a phone number after trimming whitespace.
func NewPhone(value string) (Phone, error) {
	v := strings.TrimSpace(value)
	if len(v) < config.MinPhoneLength {
		return Phone{}, fmt.Errorf("%w: %q", ErrPhoneTooShort, v)
	}
	return Phone{value: v}, nil
}

func (p Phone) String() string { return p.value }

// SanitizePhone keeps only the ASCII digits of raw.
func SanitizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Birthday is a calendar date written as "25 November 2003".
type Birthday struct {
	date time.Time
}

// ParseBirthday parses "day month-name year". Month names are matched in any letter case,
// impossible dates such as "30 February 2001" are rejected by the time package.
func ParseBirthday(value string) (Birthday, error) {
	t, err := time.Parse(config.DateLayoutBirthday, strings.TrimSpace(value))
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrBirthdayFormat, value)
	}
	return Birthday{date: t}, nil
}

// NewBirthday builds a Birthday from the calendar date of t.
func NewBirthday(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the birth date at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(config.DateFormatBirthday) }

// NextOccurrence returns the first anniversary on or after the calendar day of now, at midnight UTC.
// Go's time.Date normalizes Feb 29 to March 1st in non-leap years.
func (b Birthday) NextOccurrence(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	candidate := time.Date(today.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}
