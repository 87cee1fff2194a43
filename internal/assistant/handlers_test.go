package assistant_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/contactbook/internal/assistant"
	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/exchange"
	"github.com/tartampluch/contactbook/internal/storage"
)

// -----------------------------------------------------------------------------
// Test doubles
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// memStore keeps the snapshot in memory.
type memStore struct {
	data []byte
}

func (m *memStore) Read(context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, os.ErrNotExist
	}
	return m.data, nil
}

func (m *memStore) Write(_ context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Location() string { return "mem" }

// MockStore simulates failures of the persistence layer using `testify/mock`.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Write(ctx context.Context, data []byte) error {
	return m.Called(ctx, data).Error(0)
}

func (m *MockStore) Location() string { return "mock" }

// newSession builds a session around b with a fixed clock (November 20th, 2025).
func newSession(t *testing.T, b *book.AddressBook, store storage.ByteStore) *assistant.Session {
	t.Helper()
	msgs, err := assistant.NewMessages("en")
	require.NoError(t, err)

	s := assistant.NewSession(b, store, msgs, "")
	clock := MockClock{CurrentTime: time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)}
	s.Clock = clock
	s.Calendar = &exchange.CalendarGenerator{Clock: clock}
	return s
}

func demoSession(t *testing.T) *assistant.Session {
	t.Helper()
	b, err := book.Demo()
	require.NoError(t, err)
	return newSession(t, b, &memStore{})
}

// run executes the lines in order and returns the reply of the last one.
func run(t *testing.T, s *assistant.Session, lines ...string) string {
	t.Helper()
	var reply assistant.Reply
	for _, line := range lines {
		reply = s.Execute(context.Background(), line)
	}
	return reply.Text
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

// TestScenario_AddPhoneWhen walks through adding a contact, reading its phone
// and asking for a birthday that was never set.
func TestScenario_AddPhoneWhen(t *testing.T) {
	s := newSession(t, book.New(), &memStore{})

	reply := run(t, s, "add Nick 8976237632")
	assert.Equal(t, "Contact Nick with phone number 8976237632 was added successfully", reply)

	reply = run(t, s, "phone nick")
	assert.Equal(t, "Nick: 8976237632", reply)

	reply = run(t, s, "when nick")
	assert.Equal(t, `The contact "Nick" has no birthdate in records`, reply)
}

func TestAddContact(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{"New contact", []string{"add olha 0501234567"}, "Contact Olha with phone number 0501234567 was added successfully"},
		{"Phone is sanitized", []string{"add olha +38 (050) 123-45-67"}, "Contact Olha with phone number 380501234567 was added successfully"},
		{"Second phone", []string{"add olha 0501234567", "add OLHA 0679876543"}, "Phone number 0679876543 was added successfully to contact Olha"},
		{"No digits", []string{"add olha phone"}, "Can't create the record 'Olha'. The number that you entered does not contain any digits."},
		{"Name only", []string{"add olha"}, "Can't create the record 'Olha'. The number that you entered does not contain any digits."},
		{"Short phone", []string{"add olha 12345"}, "add - Command was entered incorrectly."},
		{"No arguments", []string{"add"}, "add - Command was entered incorrectly."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, book.New(), &memStore{})
			assert.Equal(t, tt.expected, run(t, s, tt.lines...))
		})
	}
}

func TestAddContact_SecondPhoneKeepsRecord(t *testing.T) {
	s := newSession(t, book.New(), &memStore{})
	run(t, s, "add olha 0501234567", "add olha 0679876543")

	assert.Equal(t, 1, s.Book.Len())
	assert.Equal(t, "Olha: 0501234567, 0679876543", run(t, s, "phone olha"))
}

func TestChangePhone(t *testing.T) {
	s := demoSession(t)

	assert.Equal(t, "Phone number 8976237632 has been substituted with 1111111 for contact Nick",
		run(t, s, "change nick 8976237632 1111111"))
	assert.Equal(t, "Nick: 1111111", run(t, s, "phone nick"))

	assert.Equal(t, "9999999 not in list", run(t, s, "change nick 9999999 2222222"))
	assert.Equal(t, "Can't find such name in the database.", run(t, s, "change bob 9999999 2222222"))
	assert.Equal(t, "change - Command was entered incorrectly.", run(t, s, "change nick 1111111"))
	assert.Equal(t, "change - Command was entered incorrectly.", run(t, s, "change nick 1111111 12"))
}

func TestDeletePhone(t *testing.T) {
	s := demoSession(t)
	run(t, s, "add nick 5555555")

	assert.Equal(t, "Phone number 5555555 has been deleted from contact Nick", run(t, s, "delete nick 5555555"))
	assert.Equal(t, "Nick: 8976237632", run(t, s, "phone nick"), "The requested phone is deleted, not the first one")
	assert.Equal(t, "5555555 not in list", run(t, s, "delete nick 5555555"))
}

func TestRemoveContact(t *testing.T) {
	s := demoSession(t)

	assert.Equal(t, "Contact Lara has been removed", run(t, s, "remove lara"))
	assert.Equal(t, 12, s.Book.Len())
	assert.Equal(t, "Can't find such name in the database.", run(t, s, "remove lara"))
	assert.Equal(t, "remove - Command was entered incorrectly.", run(t, s, "remove"))
}

func TestShowPhone_Unknown(t *testing.T) {
	s := demoSession(t)
	assert.Equal(t, "Can't find such name in the database.", run(t, s, "phone bob"))
}

func TestShowAll(t *testing.T) {
	s := demoSession(t)

	reply := run(t, s, "show all 2")
	lines := strings.Split(reply, "\n")
	require.Len(t, lines, 20, "7 page headers and 13 records")
	assert.Equal(t, "--- page 1 ---", lines[0])
	assert.Equal(t, "Nick, [8976237632], 25 November 2003", lines[1])
	assert.Equal(t, "--- page 7 ---", lines[18])
	assert.Equal(t, "Deepak, [991191240204], 31 December 1981", lines[19])

	for _, bad := range []string{"show all", "show all x", "show all 0", "show all -3"} {
		assert.Equal(t, "show all - Command was entered incorrectly.", run(t, s, bad), bad)
	}
}

func TestShowAll_EmptyBook(t *testing.T) {
	s := newSession(t, book.New(), &memStore{})
	assert.Equal(t, "You have no contacts yet", run(t, s, "show all 5"))
}

func TestAddBirthday(t *testing.T) {
	s := newSession(t, book.New(), &memStore{})
	run(t, s, "add nick 8976237632")

	assert.Equal(t, "Birthday 25 November 2003 has been added to the contact Nick", run(t, s, "birthday nick 25 november 2003"))
	assert.Equal(t, "5 days left until Nick's birthday", run(t, s, "when nick"))

	assert.Equal(t, "birthday - Command was entered incorrectly.", run(t, s, "birthday nick 2003-11-25"))
	assert.Equal(t, "birthday - Command was entered incorrectly.", run(t, s, "birthday nick"))
	assert.Equal(t, "Can't find such name in the database.", run(t, s, "birthday bob 1 may 2000"))
}

func TestDaysToBirthday(t *testing.T) {
	s := demoSession(t)

	// Clock is November 20th, 2025.
	assert.Equal(t, "5 days left until Nick's birthday", run(t, s, "when nick"))
	assert.Equal(t, "54 days left until Lara's birthday", run(t, s, "when lara"))

	s.Clock = MockClock{CurrentTime: time.Date(2025, 11, 25, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Today is Nick's birthday!", run(t, s, "when nick"))

	assert.Equal(t, "Can't find such name in the database.", run(t, s, "when bob"))
}

func TestFind(t *testing.T) {
	s := demoSession(t)

	assert.Equal(t, "Param should be >= 3 symbols", run(t, s, "find ar"))
	assert.Equal(t, "Param should be >= 3 symbols", run(t, s, "find"))
	assert.Equal(t, "Param should be >= 3 symbols", run(t, s, "find ол"), "Length counts characters")
	assert.Equal(t, "Lara, [98265619187], 13 January 1988", run(t, s, "find lar"))
	assert.Equal(t, "Nothing found for 'zzz'", run(t, s, "find zzz"))

	reply := run(t, s, "find 198")
	assert.Len(t, strings.Split(reply, "\n"), 8, "Every contact born in the eighties")
}

func TestSaveLoad(t *testing.T) {
	s := demoSession(t)

	assert.Equal(t, "The address book has been saved to 'mem' file", run(t, s, "save"))

	run(t, s, "remove nick", "add olha 0501234567")
	assert.Equal(t, "The address book has been loaded from 'mem' file (13 contacts)", run(t, s, "load"))

	assert.Equal(t, "Nick: 8976237632", run(t, s, "phone nick"))
	assert.Equal(t, "Can't find such name in the database.", run(t, s, "phone olha"))
}

func TestSaveLoad_Failures(t *testing.T) {
	store := new(MockStore)
	store.On("Write", mock.Anything, mock.Anything).Return(errors.New("read-only filesystem"))
	store.On("Read", mock.Anything).Return([]byte(`{"Nick": {}}`), nil)

	b, err := book.Demo()
	require.NoError(t, err)
	s := newSession(t, b, store)

	assert.Equal(t, "Could not save the address book to 'mock' file", run(t, s, "save"))
	assert.Equal(t, "Could not load the address book from 'mock' file", run(t, s, "load"))
	assert.Same(t, b, s.Book, "A failed load keeps the current book")

	store.AssertExpectations(t)
}

func TestLoad_MissingFile(t *testing.T) {
	s := newSession(t, book.New(), storage.NewFileStore(filepath.Join(t.TempDir(), "data.json")))
	assert.Contains(t, run(t, s, "load"), "Could not load the address book from")
}

func TestExportImportCalendar(t *testing.T) {
	dir := t.TempDir()
	vcf := filepath.Join(dir, "My Contacts.vcf")
	ics := filepath.Join(dir, "Birthdays.ics")

	s := demoSession(t)
	assert.Equal(t, "13 contacts exported to '"+vcf+"'", run(t, s, "export "+vcf))
	assert.Equal(t, "Birthday calendar with 13 contacts written to '"+ics+"'", run(t, s, "calendar "+ics))

	data, err := os.ReadFile(ics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Birthday: Nick")

	fresh := newSession(t, book.New(), &memStore{})
	assert.Equal(t, "13 contacts imported from '"+vcf+"', 0 skipped", run(t, fresh, "import "+vcf))
	assert.Equal(t, "0 contacts imported from '"+vcf+"', 13 skipped", run(t, fresh, "import "+vcf))
	assert.Equal(t, s.Book.String(), fresh.Book.String())
}

func TestExportImport_Failures(t *testing.T) {
	s := demoSession(t)
	missing := filepath.Join(t.TempDir(), "nope", "contacts.vcf")

	assert.Equal(t, "Could not export contacts to '"+missing+"'", run(t, s, "export "+missing))
	assert.Equal(t, "Could not import contacts from '"+missing+"'", run(t, s, "import "+missing))
	assert.Equal(t, "Could not write the birthday calendar to '"+missing+"'", run(t, s, "calendar "+missing))
	assert.Equal(t, "export - Command was entered incorrectly.", run(t, s, "export"))
}

func TestGreetingAndExit(t *testing.T) {
	s := demoSession(t)

	assert.Contains(t, run(t, s, "HELLO"), "How can I help you?")
	assert.Contains(t, run(t, s, "help"), "<show all records_per_page>")
	assert.Equal(t, "Unknown command", run(t, s, "what is this"))

	for _, line := range []string{"exit", "close", "good bye", "Good Bye"} {
		reply := s.Execute(context.Background(), line)
		assert.Equal(t, "Good bye!", reply.Text)
		assert.True(t, reply.Exit, line)
	}
	assert.False(t, s.Execute(context.Background(), "hello").Exit)
}

func TestUkrainianReplies(t *testing.T) {
	msgs, err := assistant.NewMessages("uk")
	require.NoError(t, err)
	s := assistant.NewSession(book.New(), &memStore{}, msgs, "")

	assert.Equal(t, "Невідома команда", s.Execute(context.Background(), "xyz").Text)
	assert.Equal(t, "Контакт Nick з номером 8976237632 успішно додано", s.Execute(context.Background(), "add nick 8976237632").Text)
}
