// Package inflate turns the downloaded catalog payload back into text.
package inflate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidUTF8 is returned by DecodeUTF8 for byte sequences that are not UTF-8.
var ErrInvalidUTF8 = errors.New("payload is not valid UTF-8")

// Decompress inflates a complete gzip stream. The reader is drained until the
// decoder reports end of stream; every chunk is kept.
func Decompress(compressed []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("invalid gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate gzip stream: %w", err)
	}
	return out, nil
}

// Payload decodes body according to the response Content-Encoding. An empty
// encoding is treated as gzip because the catalog is always requested
// compressed.
func Payload(body []byte, contentEncoding string) ([]byte, error) {
	switch enc := strings.ToLower(strings.TrimSpace(contentEncoding)); enc {
	case "", "gzip", "x-gzip":
		return Decompress(body)
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("invalid deflate stream: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to inflate deflate stream: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}
}

// DecodeUTF8 validates b as UTF-8 and returns it as a string without a
// leading byte order mark.
func DecodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-8: %w", err)
	}
	return string(text), nil
}
