package weft

import (
	"fmt"
	"regexp"
)

// registerParseWords installs the cursor-reading parsing words of spec.md
// §4.7: `'` (quoted string), `(` (comment), `re/`/`match/` (regex
// literals), and `word` (read one token as a value).
func registerParseWords(m *Machine) {
	m.defineImmediate("'", quoteStringPrim)
	m.defineImmediate("(", commentPrim)
	m.defineImmediate("re/", reSlashPrim)
	m.defineImmediate("match/", matchSlashPrim)
	m.defineImmediate("word", wordPrim)
	m.define("match", matchPrim)
}

// quoteStringPrim is "'" (immediate): skip the mandatory space after the
// word itself, consume through the closing "'", and compile
// `lit, <string>`.
func quoteStringPrim(ctx *Context) error {
	ctx.input.skipOneSpace()
	s := ctx.input.consume(matchRune('\''), true, false)
	ctx.compile(Callable(fetchInlineCell))
	ctx.compile(String(s))
	return nil
}

// commentPrim is "(" (immediate): consume and discard through the closing
// ")".
func commentPrim(ctx *Context) error {
	ctx.input.consume(matchRune(')'), true, false)
	return nil
}

// reSlashPrim is "re/" (immediate): skip one space, consume the pattern
// through the closing "/", compile the regex as `lit, <regex>`.
func reSlashPrim(ctx *Context) error {
	re, err := ctx.readInlineRegex()
	if err != nil {
		return err
	}
	ctx.compile(Callable(fetchInlineCell))
	ctx.compile(Regex(re))
	return nil
}

// matchSlashPrim is "match/" (immediate): same pattern parsing as re/, but
// compiles `lit, <regex>, swap, match` so the regex (pushed after whatever
// string is already on the stack) ends up in the order `match` expects.
func matchSlashPrim(ctx *Context) error {
	re, err := ctx.readInlineRegex()
	if err != nil {
		return err
	}
	ctx.compile(Callable(fetchInlineCell))
	ctx.compile(Regex(re))
	ctx.compileCoreCall("swap")
	ctx.compileCoreCall("match")
	return nil
}

func (ctx *Context) readInlineRegex() (*regexp.Regexp, error) {
	ctx.input.skipOneSpace()
	pat := ctx.input.consume(matchRune('/'), true, false)
	return regexp.Compile(pat)
}

// matchPrim is "match": pop a string, then a regex; push an array whose
// item 0 is the full match and the rest are capture groups (mirroring
// JavaScript's String.prototype.match), or an empty array on no match.
func matchPrim(ctx *Context) error {
	strV, err := ctx.Pop()
	if err != nil {
		return err
	}
	reV, err := ctx.Pop()
	if err != nil {
		return err
	}
	if reV.Kind != KindRegex || reV.Regex == nil {
		return fmt.Errorf("match needs a regex below the string, got %v", reV)
	}
	if strV.Kind != KindString {
		return fmt.Errorf("match needs a string, got %v", strV)
	}
	subs := reV.Regex.FindStringSubmatch(strV.Str)
	arr := &Array{}
	for _, s := range subs {
		arr.Items = append(arr.Items, String(s))
	}
	ctx.Push(ArrayValue(arr))
	return nil
}

// wordPrim is "word" (immediate): read one whitespace-delimited token from
// the cursor and push it as a string (undefined at end of input).
func wordPrim(ctx *Context) error {
	tok, ok := ctx.input.word()
	if !ok {
		ctx.Push(Undefined())
		return nil
	}
	ctx.Push(String(tok))
	return nil
}
