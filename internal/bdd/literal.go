package bdd

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var simpleEscapes = map[byte]string{
	'n': "\n", 't': "\t", 'r': "\r", 'b': "\b", 'f': "\f", 'v': "\v", '0': "\x00",
}

// unescape decodes the escape sequences of a JavaScript string literal body.
// Unknown escapes yield the escaped character, and an escaped line break
// is a line continuation.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		c = s[i]
		if r, ok := simpleEscapes[c]; ok {
			sb.WriteString(r)
			continue
		}
		switch c {
		case '\n':
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := hexRune(s, i+1, 2); ok {
				sb.WriteRune(r)
				i += 2
			} else {
				sb.WriteByte(c)
			}
		case 'u':
			r, n := unicodeEscape(s, i+1)
			if n == 0 {
				sb.WriteByte(c)
				continue
			}
			i += n
			if utf16.IsSurrogate(r) && i+2 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
				if low, m := unicodeEscape(s, i+3); m > 0 {
					if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
						r = pair
						i += 2 + m
					}
				}
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// unicodeEscape reads the digits after \u, either XXXX or {X...}, starting
// at start. It returns the rune and the number of bytes consumed.
func unicodeEscape(s string, start int) (rune, int) {
	if start < len(s) && s[start] == '{' {
		end := strings.IndexByte(s[start:], '}')
		if end < 2 {
			return 0, 0
		}
		if r, ok := hexRune(s, start+1, end-1); ok {
			return r, end + 1
		}
		return 0, 0
	}
	if r, ok := hexRune(s, start, 4); ok {
		return r, 4
	}
	return 0, 0
}

func hexRune(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, false
	}
	return rune(v), true
}
