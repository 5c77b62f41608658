// Package textnorm repairs and normalizes catalog metadata strings.
//
// Upstream catalog exports mix encodings: UTF-8 text read back as
// Latin-1 turns accented characters into two-byte mojibake, and some
// exports leave literal backslash escape sequences in free-text fields.
// Clean degrades broken input to a best-effort readable string and
// never fails.
package textnorm

import (
	"strings"
	"unicode/utf8"
)

// mojibakeReplacer maps UTF-8-read-as-Latin-1 byte pairs back to the
// accented characters seen in the source catalogs.
var mojibakeReplacer = strings.NewReplacer(
	"Ã¥", "å",
	"Ã¤", "ä",
	"Ã¶", "ö",
	"Ã", "Å",
	"Ã", "Ä",
	"Ã", "Ö",
)

// Clean returns a trimmed display string for raw catalog text.
// It decodes \uXXXX escape sequences left behind by upstream
// serializers, repairs known mojibake pairs, strips any remaining
// spurious backslashes, and trims surrounding whitespace. Escape
// decoding runs first so mojibake arriving as escape sequences is
// still repaired, which keeps Clean idempotent. Clean never returns
// an error; input it cannot repair passes through unchanged apart
// from backslash stripping and trimming.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	text := decodeUnicodeEscapes(raw)
	text = mojibakeReplacer.Replace(text)
	text = strings.ReplaceAll(text, `\`, "")
	return strings.TrimSpace(text)
}

// CleanPtr is Clean for nullable source columns.
func CleanPtr(raw *string) string {
	if raw == nil {
		return ""
	}
	return Clean(*raw)
}

// decodeUnicodeEscapes replaces literal \uXXXX sequences with the rune
// they encode. Malformed sequences are left in place for the caller's
// backslash stripping rather than failing the whole string.
func decodeUnicodeEscapes(text string) string {
	if !strings.Contains(text, `\u`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] == '\\' && i+5 < len(text) && text[i+1] == 'u' {
			if r, ok := parseHexRune(text[i+2 : i+6]); ok {
				b.WriteRune(r)
				i += 6
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}

	return b.String()
}

func parseHexRune(hex string) (rune, bool) {
	var value rune
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		switch {
		case c >= '0' && c <= '9':
			value = value<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			value = value<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			value = value<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	if !utf8.ValidRune(value) {
		return 0, false
	}
	return value, true
}
