package jsonextract

import (
	"errors"

	"github.com/tidwall/gjson"
)

var ErrNoObject = errors.New("no json object found")

// FirstObject returns the first balanced {...} span in text that is valid JSON.
// Braces inside string literals are ignored while tracking depth, so prose such
// as `use {x}` before the real payload does not confuse the scan.
func FirstObject(text string) (string, error) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}

		end := matchClosing(text, start)
		if end < 0 {
			continue
		}

		candidate := text[start : end+1]
		if gjson.Valid(candidate) {
			return candidate, nil
		}
	}

	return "", ErrNoObject
}

// matchClosing returns the index of the brace closing the one at start, or -1.
func matchClosing(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
