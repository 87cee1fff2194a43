package assistant

import (
	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/exchange"
	"github.com/tartampluch/contactbook/internal/storage"
)

// Session is the state shared by every command of one run.
// It is built once at startup and handed to each handler.
type Session struct {
	Book     *book.AddressBook
	Store    storage.ByteStore // Snapshot used by save and load.
	Clock    book.Clock        // Injected clock for testability.
	Calendar *exchange.CalendarGenerator
	Messages *Messages

	// OpenFile returns the store behind an export, import or calendar path.
	OpenFile func(path string) storage.ByteStore
}

// NewSession wires a session around b with the real clock and file system.
func NewSession(b *book.AddressBook, store storage.ByteStore, msgs *Messages, reminder string) *Session {
	clock := book.RealClock{}
	return &Session{
		Book:     b,
		Store:    store,
		Clock:    clock,
		Calendar: &exchange.CalendarGenerator{Clock: clock, Reminder: reminder},
		Messages: msgs,
		OpenFile: func(path string) storage.ByteStore { return storage.NewFileStore(path) },
	}
}

// Reply is the outcome of one input line.
type Reply struct {
	Text string
	Exit bool // The session ends after printing Text.
}

func (s *Session) msg(key string, data map[string]any) string {
	return s.Messages.Get(key, data)
}
