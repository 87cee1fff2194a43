package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/config"
)

// ImportStats summarizes an ImportVCards run.
type ImportStats struct {
	Processed int // Cards decoded successfully.
	Added     int
	Skipped   int // Cards without a usable name, or whose name is already in the book.
}

// ExportVCards writes every record of b as a vCard 4.0 and returns the number of cards written.
func ExportVCards(w io.Writer, b *book.AddressBook) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0

	for _, r := range b.Records() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldFormattedName, r.Name().String())
		for _, p := range r.Phones() {
			card.Add(vcard.FieldTelephone, &vcard.Field{Value: p.String()})
		}
		if bday, ok := r.Birthday(); ok {
			card.SetValue(vcard.FieldBirthday, bday.Date().Format(config.DateFormatFullDash))
		}

		if err := enc.Encode(card); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Info(config.MsgVCardExported,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyCount, count,
	)
	return count, nil
}

// ImportVCards decodes cards from r and adds each one as a new record of b.
// Malformed cards are logged and skipped; existing contacts are never modified.
func ImportVCards(ctx context.Context, r io.Reader, b *book.AddressBook) (ImportStats, error) {
	start := time.Now()
	var stats ImportStats
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream cannot be resynchronized; keep what was imported so far.
			return stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		stats.Processed++

		rec, err := recordFromCard(card)
		if err != nil {
			stats.Skipped++
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyError, err)
			continue
		}
		if err := b.Add(rec); err != nil {
			stats.Skipped++
			slog.Debug(config.MsgSkippedContact,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyName, rec.Name().String(),
				config.LogKeyError, err)
			continue
		}
		stats.Added++
	}

	slog.Info(config.MsgVCardImported,
		config.LogKeyComponent, config.CompExchange,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyCount, stats.Added),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

// recordFromCard converts one card. Phones that fail validation and birthdays
// without a year are dropped; only a missing name rejects the card.
func recordFromCard(card vcard.Card) (*book.Record, error) {
	// Name Strategy: FN (Formatted) > N (Structured)
	raw := ""
	if fn := card.Get(vcard.FieldFormattedName); fn != nil {
		raw = fn.Value
	} else if n := card.Get(vcard.FieldName); n != nil {
		raw = structuredName(n.Value)
	}
	name, err := book.CanonicalName(raw)
	if err != nil {
		return nil, err
	}

	var phones []book.Phone
	for _, tel := range card[vcard.FieldTelephone] {
		p, err := book.NewPhone(book.SanitizePhone(tel.Value))
		if err != nil {
			slog.Debug(config.MsgSkippedContact,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyName, name.String(),
				config.LogKeyValue, tel.Value)
			continue
		}
		phones = append(phones, p)
	}

	var bday *book.Birthday
	if f := card.Get(vcard.FieldBirthday); f != nil && f.Value != "" {
		date, yearKnown, err := parseDate(f.Value)
		if err == nil && yearKnown {
			b := book.NewBirthday(date)
			bday = &b
		} else {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyValue, f.Value)
		}
	}

	return book.NewRecord(name, phones, bday), nil
}

// structuredName turns an N value ("Family;Given;Additional;Prefix;Suffix") into "Given Family".
func structuredName(value string) string {
	parts := strings.Split(value, ";")
	if len(parts) < 2 {
		return value
	}
	return strings.TrimSpace(parts[1] + config.ArgSeparator + parts[0])
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		time.RFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
