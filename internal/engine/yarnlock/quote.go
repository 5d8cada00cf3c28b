package yarnlock

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Quote returns s bare when it is a plain identifier-like token and as a
// JSON string otherwise. A token is plain when it starts with an ASCII
// letter, does not start with "true" or "false", and holds no whitespace,
// colon, backslash, double quote, comma or bracket.
func Quote(s string) string {
	if needsQuote(s) {
		return jsonString(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" || !isASCIILetter(s[0]) {
		return true
	}
	if strings.HasPrefix(s, "true") || strings.HasPrefix(s, "false") {
		return true
	}
	for _, r := range s {
		switch r {
		case ':', '\\', '"', ',', '[', ']':
			return true
		}
		if isJSSpace(r) {
			return true
		}
	}
	return false
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// isJSSpace matches the ECMAScript whitespace and line terminator set.
// It differs from unicode.IsSpace on U+0085 and U+FEFF.
func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return 0x2000 <= r && r <= 0x200a
}

// jsonString encodes s as a JSON string literal the way JSON.stringify does:
// no HTML escaping, U+2028 and U+2029 left raw, and the short \b and \f
// escapes in place of \u0008 and \u000c.
func jsonString(s string) string {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape(), json.DisableNormalizeUTF8())
	if err != nil {
		return strconv.Quote(s)
	}
	if !strings.ContainsAny(s, "\b\f") {
		return string(b)
	}
	return shortEscapes(b)
}

var shortEscape = map[string]string{
	`\u0008`: `\b`,
	`\u000c`: `\f`,
}

// shortEscapes rewrites long control escapes in an encoded JSON string.
// Escapes are consumed pairwise so an escaped backslash followed by
// "u0008" is left alone.
func shortEscapes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			sb.WriteByte(b[i])
			continue
		}
		if i+6 <= len(b) {
			if short, ok := shortEscape[string(b[i:i+6])]; ok {
				sb.WriteString(short)
				i += 5
				continue
			}
		}
		sb.Write(b[i : i+2])
		i++
	}
	return sb.String()
}
