package weft

import (
	"io"
	"strings"
	"unicode"

	"github.com/weft-lang/weft/internal/fileinput"
)

// Cursor owns the input text stream and a read position, grounded on the
// teacher's fileinput.Input (queued multi-reader rune input with per-line
// tracking, used here for error-location reporting).
type Cursor struct {
	fileinput.Input
	pk peekState
}

// AddReader queues another input source to be read once the current one is
// exhausted. NewContext queues its source string first and any extra
// readers after it, in order.
func (c *Cursor) AddReader(r io.Reader) { c.Queue = append(c.Queue, r) }

// consume implements spec.md §4.1: advance past leading whitespace if
// requested, then read until either end-of-input or a rune matching until,
// slicing [start, pointer) and optionally consuming the matching rune too.
// Backslash-escapes in the result are stripped (\X becomes X). The cursor
// never fails outright; reading past end-of-input simply ends the loop.
func (c *Cursor) consume(until runeMatcher, including, ignoreLeadingWhitespace bool) string {
	if ignoreLeadingWhitespace {
		for {
			r, ok := c.peekRune()
			if !ok || !isSpace(r) {
				break
			}
			c.nextRune()
		}
	}

	var sb strings.Builder
	for {
		r, ok := c.peekRune()
		if !ok || until(r) {
			if including && ok {
				c.nextRune()
			}
			break
		}
		c.nextRune()
		sb.WriteRune(r)
	}
	return stripBackslashEscapes(sb.String())
}

// word reads one whitespace-delimited token, per spec.md §4.3 step 2: skip
// leading whitespace, then consume non-whitespace runes. Returns ("", false)
// at end of input.
func (c *Cursor) word() (string, bool) {
	for {
		r, ok := c.peekRune()
		if !ok {
			return "", false
		}
		if !isSpace(r) {
			break
		}
		c.nextRune()
	}
	tok := c.consume(isSpace, false, false)
	return tok, true
}

// skipOneSpace drops exactly one rune, the mandatory separator that parsing
// words like ' and re/ require between the word name and their payload
// (spec.md §9: "parsing words that expect exactly one space before their
// payload must skip that space").
func (c *Cursor) skipOneSpace() { c.nextRune() }

type runeMatcher func(rune) bool

func isSpace(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }

func matchRune(want rune) runeMatcher {
	return func(r rune) bool { return r == want }
}

func stripBackslashEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			i++
			sb.WriteRune(runes[i])
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// peekRune/nextRune adapt fileinput.Input's ReadRune (which always
// consumes) into a one-rune-of-pushback cursor; Cursor buffers at most one
// look-ahead rune at a time.
type peekState struct {
	has bool
	r   rune
}

func (c *Cursor) peekRune() (rune, bool) {
	if c.pk.has {
		return c.pk.r, true
	}
	r, _, err := c.Input.ReadRune()
	if err != nil {
		return 0, false
	}
	c.pk = peekState{true, r}
	return r, true
}

func (c *Cursor) nextRune() (rune, bool) {
	if c.pk.has {
		c.pk.has = false
		return c.pk.r, true
	}
	r, _, err := c.Input.ReadRune()
	if err != nil {
		return 0, false
	}
	return r, true
}
