package assistant

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/config"
	"github.com/tartampluch/contactbook/internal/exchange"
	"github.com/tartampluch/contactbook/internal/storage"
)

// handlerFunc runs one command. args are already split; the returned error is
// translated by Session.translate.
type handlerFunc func(ctx context.Context, s *Session, args []string) (string, error)

// arg returns args[i] or ErrMissingArgument.
func arg(args []string, i int) (string, error) {
	if i >= len(args) || args[i] == "" {
		return "", fmt.Errorf("%w: #%d", ErrMissingArgument, i+1)
	}
	return args[i], nil
}

// lookup finds the contact called raw, which may span several words.
func (s *Session) lookup(raw string) (*book.Record, error) {
	name, err := book.CanonicalName(raw)
	if err != nil {
		return nil, err
	}
	rec, ok := s.Book.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", book.ErrContactNotFound, name)
	}
	return rec, nil
}

func hello(_ context.Context, s *Session, _ []string) (string, error) {
	return s.msg(config.TKeyGreeting, nil), nil
}

// addContact creates a contact or appends a phone to an existing one.
// Every token after the name is part of the phone; only its digits are kept.
func addContact(_ context.Context, s *Session, args []string) (string, error) {
	raw, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	name, err := book.CanonicalName(raw)
	if err != nil {
		return "", err
	}

	digits := book.SanitizePhone(strings.Join(args[1:], ""))
	if digits == "" {
		return s.msg(config.TKeyNoDigits, map[string]any{"Name": name}), nil
	}
	phone, err := book.NewPhone(digits)
	if err != nil {
		return "", err
	}

	data := map[string]any{"Name": name, "Phone": phone}
	if rec, ok := s.Book.Get(name); ok {
		rec.AddPhone(phone)
		return s.msg(config.TKeyPhoneAdded, data), nil
	}

	if err := s.Book.Add(book.NewRecord(name, []book.Phone{phone}, nil)); err != nil {
		return "", withReply(err, config.TKeyContactExists, data)
	}
	return s.msg(config.TKeyContactAdded, data), nil
}

// parsePhoneArg validates a phone typed as a command argument.
func parsePhoneArg(args []string, i int) (book.Phone, error) {
	raw, err := arg(args, i)
	if err != nil {
		return book.Phone{}, err
	}
	return book.NewPhone(book.SanitizePhone(raw))
}

func changePhone(_ context.Context, s *Session, args []string) (string, error) {
	raw, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	old, err := parsePhoneArg(args, 1)
	if err != nil {
		return "", err
	}
	replacement, err := parsePhoneArg(args, 2)
	if err != nil {
		return "", err
	}

	rec, err := s.lookup(raw)
	if err != nil {
		return "", err
	}
	if err := rec.EditPhone(old, replacement); err != nil {
		return "", withReply(err, config.TKeyPhoneNotInList, map[string]any{"Phone": old})
	}
	return s.msg(config.TKeyPhoneChanged, map[string]any{
		"Name": rec.Name(),
		"Old":  old,
		"New":  replacement,
	}), nil
}

func deletePhone(_ context.Context, s *Session, args []string) (string, error) {
	raw, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	phone, err := parsePhoneArg(args, 1)
	if err != nil {
		return "", err
	}

	rec, err := s.lookup(raw)
	if err != nil {
		return "", err
	}
	if err := rec.DeletePhone(phone); err != nil {
		return "", withReply(err, config.TKeyPhoneNotInList, map[string]any{"Phone": phone})
	}
	return s.msg(config.TKeyPhoneDeleted, map[string]any{"Name": rec.Name(), "Phone": phone}), nil
}

func removeContact(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := s.lookup(strings.Join(args, config.ArgSeparator))
	if err != nil {
		return "", err
	}
	if err := s.Book.Remove(rec.Name()); err != nil {
		return "", err
	}
	return s.msg(config.TKeyContactRemoved, map[string]any{"Name": rec.Name()}), nil
}

func showPhone(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := s.lookup(strings.Join(args, config.ArgSeparator))
	if err != nil {
		return "", err
	}

	phones := make([]string, 0)
	for _, p := range rec.Phones() {
		phones = append(phones, p.String())
	}
	return s.msg(config.TKeyShowPhone, map[string]any{
		"Name":   rec.Name(),
		"Phones": strings.Join(phones, config.PhoneSeparator),
	}), nil
}

// showAll lists the book in pages of the requested size, each under a page header.
func showAll(_ context.Context, s *Session, args []string) (string, error) {
	if s.Book.Len() == 0 {
		return s.msg(config.TKeyNoContacts, nil), nil
	}

	raw, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadArgument, err)
	}
	pages, err := s.Book.Pages(size)
	if err != nil {
		return "", err
	}

	var lines []string
	n := 0
	for page := range pages {
		n++
		lines = append(lines, s.msg(config.TKeyPageHeader, map[string]any{"Page": n}))
		for _, rec := range page {
			lines = append(lines, rec.String())
		}
	}
	return strings.Join(lines, config.LineSeparator), nil
}

func addBirthday(_ context.Context, s *Session, args []string) (string, error) {
	raw, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	date, err := arg(args, 1)
	if err != nil {
		return "", err
	}
	bday, err := book.ParseBirthday(date)
	if err != nil {
		return "", err
	}

	rec, err := s.lookup(raw)
	if err != nil {
		return "", err
	}
	rec.SetBirthday(bday)
	return s.msg(config.TKeyBirthdayAdded, map[string]any{"Name": rec.Name(), "Birthday": bday}), nil
}

func find(_ context.Context, s *Session, args []string) (string, error) {
	query := strings.Join(args, config.ArgSeparator)
	found, err := s.Book.Search(query)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return s.msg(config.TKeyNothingFound, map[string]any{"Query": query}), nil
	}

	lines := make([]string, 0, len(found))
	for _, rec := range found {
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, config.LineSeparator), nil
}

func daysToBirthday(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := s.lookup(strings.Join(args, config.ArgSeparator))
	if err != nil {
		return "", err
	}

	data := map[string]any{"Name": rec.Name()}
	days, ok := rec.DaysToBirthday(s.Clock.Now())
	switch {
	case !ok:
		return s.msg(config.TKeyNoBirthday, data), nil
	case days == 0:
		return s.msg(config.TKeyBirthdayToday, data), nil
	default:
		data["Days"] = days
		return s.msg(config.TKeyDaysToBirthday, data), nil
	}
}

func save(ctx context.Context, s *Session, _ []string) (string, error) {
	data := map[string]any{"Path": s.Store.Location()}
	if err := storage.SaveBook(ctx, s.Store, s.Book); err != nil {
		return "", withReply(err, config.TKeySaveFailed, data)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyPath, s.Store.Location(),
		config.LogKeyCount, s.Book.Len(),
	)
	return s.msg(config.TKeySaved, data), nil
}

// load replaces the session book with the saved snapshot. On failure the current book is kept.
func load(ctx context.Context, s *Session, _ []string) (string, error) {
	data := map[string]any{"Path": s.Store.Location()}
	loaded, err := storage.LoadBook(ctx, s.Store)
	if err != nil {
		return "", withReply(err, config.TKeyLoadFailed, data)
	}
	s.Book = loaded

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyPath, s.Store.Location(),
		config.LogKeyCount, loaded.Len(),
	)
	data["Count"] = loaded.Len()
	return s.msg(config.TKeyLoaded, data), nil
}

func exportVCards(ctx context.Context, s *Session, args []string) (string, error) {
	path, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	data := map[string]any{"Path": path}

	var buf bytes.Buffer
	count, err := exchange.ExportVCards(&buf, s.Book)
	if err != nil {
		return "", withReply(err, config.TKeyExportFailed, data)
	}
	if err := s.OpenFile(path).Write(ctx, buf.Bytes()); err != nil {
		return "", withReply(err, config.TKeyExportFailed, data)
	}

	data["Count"] = count
	return s.msg(config.TKeyExported, data), nil
}

func importVCards(ctx context.Context, s *Session, args []string) (string, error) {
	path, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	data := map[string]any{"Path": path}

	raw, err := s.OpenFile(path).Read(ctx)
	if err != nil {
		return "", withReply(err, config.TKeyImportFailed, data)
	}
	stats, err := exchange.ImportVCards(ctx, bytes.NewReader(raw), s.Book)
	if err != nil {
		return "", withReply(err, config.TKeyImportFailed, data)
	}

	data["Added"] = stats.Added
	data["Skipped"] = stats.Skipped
	return s.msg(config.TKeyImported, data), nil
}

func writeCalendar(ctx context.Context, s *Session, args []string) (string, error) {
	path, err := arg(args, 0)
	if err != nil {
		return "", err
	}
	data := map[string]any{"Path": path}

	ics, count, err := s.Calendar.Generate(ctx, s.Book)
	if err != nil {
		return "", withReply(err, config.TKeyCalendarFailed, data)
	}
	if err := s.OpenFile(path).Write(ctx, ics); err != nil {
		return "", withReply(err, config.TKeyCalendarFailed, data)
	}

	data["Count"] = count
	return s.msg(config.TKeyCalendarWritten, data), nil
}

func end(_ context.Context, s *Session, _ []string) (string, error) {
	return s.msg(config.TKeyGoodBye, nil), nil
}

func unknown(_ context.Context, s *Session, _ []string) (string, error) {
	return s.msg(config.TKeyUnknownCommand, nil), nil
}
