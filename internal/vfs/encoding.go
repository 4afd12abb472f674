package vfs

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding represents a character encoding.
type Encoding string

const (
	// EncodingUTF8 is UTF-8 encoding (default).
	EncodingUTF8 Encoding = "utf-8"

	// EncodingUTF8BOM is UTF-8 encoding with BOM.
	EncodingUTF8BOM Encoding = "utf-8-bom"

	// EncodingUTF16LE is UTF-16 Little Endian.
	EncodingUTF16LE Encoding = "utf-16le"

	// EncodingUTF16BE is UTF-16 Big Endian.
	EncodingUTF16BE Encoding = "utf-16be"

	// EncodingLatin1 is ISO-8859-1 (Latin-1).
	EncodingLatin1 Encoding = "iso-8859-1"
)

// ErrBinary indicates content that does not look like text.
var ErrBinary = errors.New("binary content")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding guesses the encoding of file content from its BOM,
// then by validating UTF-8. Latin-1 accepts every byte sequence and is
// the fallback.
func DetectEncoding(content []byte) Encoding {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(content, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(content):
		return EncodingUTF8
	default:
		return EncodingLatin1
	}
}

// IsBinary reports whether content looks binary: it has NUL bytes or
// more than 10% control characters in its first 8KB. UTF-16 text is
// recognised by its BOM first.
func IsBinary(content []byte) bool {
	if len(content) == 0 || bytes.HasPrefix(content, bomUTF16LE) || bytes.HasPrefix(content, bomUTF16BE) {
		return false
	}
	sample := content[:min(len(content), 8192)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.1
}

// Decode converts file content to UTF-8 text and reports the encoding
// it was in, so Encode can write it back the same way.
func Decode(content []byte) (string, Encoding, error) {
	if IsBinary(content) {
		return "", "", ErrBinary
	}
	enc := DetectEncoding(content)
	switch enc {
	case EncodingUTF8:
		return string(content), enc, nil
	case EncodingUTF8BOM:
		return string(content[len(bomUTF8):]), enc, nil
	}
	text, err := codec(enc).NewDecoder().Bytes(content)
	if err != nil {
		return "", enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(text), enc, nil
}

// Encode converts UTF-8 text to enc.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case "", EncodingUTF8:
		return []byte(text), nil
	case EncodingUTF8BOM:
		return append(append([]byte(nil), bomUTF8...), text...), nil
	}
	c := codec(enc)
	if c == nil {
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
	out, err := c.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

func codec(enc Encoding) encoding.Encoding {
	switch enc {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EncodingLatin1:
		return charmap.ISO8859_1
	default:
		return nil
	}
}
