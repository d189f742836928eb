package feed

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultCharset is assumed when none is configured.
const DefaultCharset = "utf-8"

// charsets maps accepted charset names to their decoders.
var charsets = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// canonicalCharsets are the names listed in messages; the rest are aliases.
var canonicalCharsets = []string{"utf-8", "windows-1252", "iso-8859-1"}

// SupportedCharset reports whether Decode accepts name.
// Empty means DefaultCharset.
func SupportedCharset(name string) bool {
	_, ok := lookupCharset(name)
	return ok
}

// SupportedCharsets returns the canonical charset names Decode accepts.
func SupportedCharsets() []string {
	return slices.Clone(canonicalCharsets)
}

func lookupCharset(charset string) (encoding.Encoding, bool) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" {
		name = DefaultCharset
	}
	enc, ok := charsets[name]
	return enc, ok
}

// Decode wraps r so it yields UTF-8 text.
//
// A leading byte order mark always wins over charset and is removed, so
// spreadsheet exports saved "with BOM" do not corrupt the first header name.
// For UTF-8 input, invalid byte sequences become U+FFFD.
func Decode(r io.Reader, charset string) (io.Reader, error) {
	enc, ok := lookupCharset(charset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset)
	}

	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}
