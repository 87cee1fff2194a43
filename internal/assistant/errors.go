package assistant

import (
	"errors"
	"log/slog"

	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/config"
)

var (
	ErrMissingArgument = errors.New(config.ErrMissingArgument)
	ErrBadArgument     = errors.New(config.ErrBadArgument)
)

// replyError is a failure that already knows its translated reply.
type replyError struct {
	key  string
	data map[string]any
	err  error
}

func (e *replyError) Error() string { return e.err.Error() }
func (e *replyError) Unwrap() error { return e.err }

func withReply(err error, key string, data map[string]any) error {
	return &replyError{key: key, data: data, err: err}
}

// errorReplies maps error kinds to replies. The first match wins; anything
// unmatched is reported as an incorrectly entered command.
var errorReplies = []struct {
	target error
	key    string
}{
	{book.ErrContactNotFound, config.TKeyNameNotFound},
	{book.ErrQueryTooShort, config.TKeyQueryTooShort},
	{book.ErrInvalidName, config.TKeyIncorrect},
	{book.ErrPhoneTooShort, config.TKeyIncorrect},
	{book.ErrBirthdayFormat, config.TKeyIncorrect},
	{book.ErrInvalidPageSize, config.TKeyIncorrect},
	{ErrMissingArgument, config.TKeyIncorrect},
	{ErrBadArgument, config.TKeyIncorrect},
}

// translate turns a handler error into the reply shown to the user.
func (s *Session) translate(command string, err error) string {
	log := slog.With(
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, command,
		config.LogKeyError, err,
	)

	var re *replyError
	if errors.As(err, &re) {
		log.Warn(config.MsgCommandFailed)
		return s.msg(re.key, re.data)
	}

	data := map[string]any{
		"Command": command,
		"Min":     config.MinSearchLength,
	}
	for _, r := range errorReplies {
		if errors.Is(err, r.target) {
			log.Debug(config.MsgCommandFailed)
			return s.msg(r.key, data)
		}
	}

	log.Error(config.ErrUnhandled)
	return s.msg(config.TKeyIncorrect, data)
}
