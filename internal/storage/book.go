package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/config"
)

// SaveBook writes b as indented JSON.
func SaveBook(ctx context.Context, s ByteStore, b *book.AddressBook) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return s.Write(ctx, data)
}

// LoadBook reads a book written by SaveBook.
// Snapshots that fail validation are reported with book.ErrMalformedSnapshot.
func LoadBook(ctx context.Context, s ByteStore) (*book.AddressBook, error) {
	data, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}

	b := book.New()
	if err := json.Unmarshal(data, b); err != nil {
		if errors.Is(err, book.ErrMalformedSnapshot) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", book.ErrMalformedSnapshot, err)
	}

	slog.Debug(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, s.Location(),
		config.LogKeyCount, b.Len(),
	)
	return b, nil
}
