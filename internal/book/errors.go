package book

import (
	"errors"

	"github.com/tartampluch/contactbook/internal/config"
)

// Validation errors raised while constructing field values.
var (
	ErrInvalidName    = errors.New(config.ErrInvalidName)
	ErrPhoneTooShort  = errors.New(config.ErrPhoneTooShort)
	ErrBirthdayFormat = errors.New(config.ErrBirthdayFormat)
)

// Lookup and usage errors raised by Record and AddressBook operations.
var (
	ErrPhoneNotFound     = errors.New(config.ErrPhoneNotFound)
	ErrContactExists     = errors.New(config.ErrContactExists)
	ErrContactNotFound   = errors.New(config.ErrContactNotFound)
	ErrQueryTooShort     = errors.New(config.ErrQueryTooShort)
	ErrInvalidPageSize   = errors.New(config.ErrInvalidPageSize)
	ErrMalformedSnapshot = errors.New(config.ErrMalformedSnapshot)
)
