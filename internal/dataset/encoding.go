package dataset

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is a candidate text encoding for the source file.
type Encoding struct {
	Name string

	enc encoding.Encoding
	// strict rejects input that is not valid in the encoding instead of
	// substituting replacement characters.
	strict bool
}

// Candidates lists the encodings tried by the loader, in priority order.
// The single-byte encodings accept any input, so UTF-8 must come first.
var Candidates = []Encoding{
	{Name: "utf-8", enc: unicode.UTF8BOM, strict: true},
	{Name: "latin1", enc: charmap.ISO8859_1},
	{Name: "iso-8859-1", enc: charmap.ISO8859_1},
	{Name: "windows-1252", enc: charmap.Windows1252},
}

func (e Encoding) String() string {
	return e.Name
}

// NewReader returns a reader that yields raw decoded as UTF-8 text.
func (e Encoding) NewReader(raw []byte) (io.Reader, error) {
	if e.strict && !utf8.Valid(raw) {
		return nil, ErrInvalidEncoding
	}
	return transform.NewReader(bytes.NewReader(raw), e.enc.NewDecoder()), nil
}

// Decode converts the whole of raw to a string.
func (e Encoding) Decode(raw []byte) (string, error) {
	if e.strict && !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}
	out, err := e.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

const (
	// mojibakeMarker is what the first byte of a two-byte UTF-8 sequence for
	// Portuguese letters (ã, ç, é, ...) turns into under a Latin-1 decode.
	mojibakeMarker = "Ã"
	// correctMarker only shows up when the text was decoded correctly.
	correctMarker = "ã"
)

// LooksMisdecoded reports whether sample looks like UTF-8 text decoded with
// a single-byte encoding.
func LooksMisdecoded(sample string) bool {
	return strings.Contains(sample, mojibakeMarker) && !strings.Contains(sample, correctMarker)
}
