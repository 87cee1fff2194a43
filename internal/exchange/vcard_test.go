package exchange_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/exchange"
)

func TestExportVCards(t *testing.T) {
	b, err := book.Demo()
	require.NoError(t, err)

	var buf bytes.Buffer
	count, err := exchange.ExportVCards(&buf, b)
	require.NoError(t, err)
	assert.Equal(t, 13, count)

	out := buf.String()
	assert.Equal(t, 13, strings.Count(out, "BEGIN:VCARD"))
	assert.Contains(t, out, "VERSION:4.0")
	assert.Contains(t, out, "FN:Nick")
	assert.Contains(t, out, "TEL:8976237632")
	assert.Contains(t, out, "BDAY:2003-11-25")
}

// TestVCards_RoundTrip exports a book and imports it into an empty one.
func TestVCards_RoundTrip(t *testing.T) {
	original, err := book.Demo()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = exchange.ExportVCards(&buf, original)
	require.NoError(t, err)

	restored := book.New()
	stats, err := exchange.ImportVCards(context.Background(), &buf, restored)
	require.NoError(t, err)

	assert.Equal(t, exchange.ImportStats{Processed: 13, Added: 13}, stats)
	assert.Equal(t, original.String(), restored.String())
}

func TestImportVCards_Variants(t *testing.T) {
	vcardContent := `BEGIN:VCARD
VERSION:3.0
FN:JOHN DOE
TEL;TYPE=cell:+38 (050) 123-45-67
TEL:123
BDAY:19880113
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Kovalenko;Olha;;;
BDAY:--0525
END:VCARD
BEGIN:VCARD
VERSION:3.0
TEL:5555555
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Nick
TEL:000000
END:VCARD
`
	b := book.New()
	existing := book.NewRecord(mustName(t, "Nick"), nil, nil)
	require.NoError(t, b.Add(existing))

	stats, err := exchange.ImportVCards(context.Background(), strings.NewReader(vcardContent), b)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Processed)
	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 2, stats.Skipped, "Nameless card and existing contact are skipped")

	john, ok := b.Get(mustName(t, "John Doe"))
	require.True(t, ok)
	assert.Equal(t, "John Doe, [380501234567], 13 January 1988", john.String(), "Short phones are dropped")

	olha, ok := b.Get(mustName(t, "Olha Kovalenko"))
	require.True(t, ok)
	_, hasBday := olha.Birthday()
	assert.False(t, hasBday, "A birthday without year is not kept")

	nick, ok := b.Get(mustName(t, "Nick"))
	require.True(t, ok)
	assert.Same(t, existing, nick)
	assert.Empty(t, nick.Phones(), "Existing contacts are never modified")
}

func TestImportVCards_Empty(t *testing.T) {
	stats, err := exchange.ImportVCards(context.Background(), strings.NewReader(""), book.New())
	require.NoError(t, err)
	assert.Zero(t, stats)
}

func TestImportVCards_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exchange.ImportVCards(ctx, strings.NewReader("BEGIN:VCARD\nVERSION:4.0\nFN:A\nEND:VCARD\n"), book.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func mustName(t *testing.T, v string) book.Name {
	t.Helper()
	n, err := book.NewName(v)
	require.NoError(t, err)
	return n
}
