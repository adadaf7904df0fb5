package weft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCursor(src string) *Cursor {
	var c Cursor
	c.AddReader(strings.NewReader(src))
	return &c
}

func TestCursorWord(t *testing.T) {
	c := newCursor("  foo bar\tbaz")

	tok, ok := c.word()
	require.True(t, ok)
	assert.Equal(t, "foo", tok)

	tok, ok = c.word()
	require.True(t, ok)
	assert.Equal(t, "bar", tok)

	tok, ok = c.word()
	require.True(t, ok)
	assert.Equal(t, "baz", tok)

	_, ok = c.word()
	assert.False(t, ok)
}

func TestCursorConsumeStripsBackslashEscapes(t *testing.T) {
	c := newCursor(`a\tb' rest`)
	got := c.consume(matchRune('\''), true, false)
	assert.Equal(t, "atb", got)

	tok, ok := c.word()
	require.True(t, ok)
	assert.Equal(t, "rest", tok)
}

func TestCursorConsumeIgnoresLeadingWhitespace(t *testing.T) {
	c := newCursor("   abc)")
	got := c.consume(matchRune(')'), true, true)
	assert.Equal(t, "abc", got)
}

func TestCursorSkipOneSpace(t *testing.T) {
	c := newCursor(" x")
	c.skipOneSpace()
	tok, ok := c.word()
	require.True(t, ok)
	assert.Equal(t, "x", tok)
}

func TestCursorAddReaderQueuesAfterCurrent(t *testing.T) {
	c := newCursor("first")
	c.AddReader(strings.NewReader(" second"))

	tok, ok := c.word()
	require.True(t, ok)
	assert.Equal(t, "first", tok)

	tok, ok = c.word()
	require.True(t, ok)
	assert.Equal(t, "second", tok)
}
