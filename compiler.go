package weft

import (
	"strconv"
	"strings"
)

// interpretOne is "compile one token" (spec.md §4.3): read a whitespace
// delimited word; at true end-of-input, either kick off EXECUTE (once, if
// executeAtEnd) or halt. Otherwise look the token up: an immediate word
// runs right now; anything else is compiled as a cell.
func (ctx *Context) interpretOne() error {
	tok, ok := ctx.input.word()
	if !ok {
		return ctx.endOfInput()
	}
	return ctx.compileToken(tok)
}

func (ctx *Context) endOfInput() error {
	if ctx.executeAtEnd && !ctx.didExecuteAtEnd {
		ctx.didExecuteAtEnd = true
		return executePrim(ctx)
	}
	ctx.halt(nil)
	return nil
}

func (ctx *Context) compileToken(tok string) error {
	if e := ctx.m.dict.Find(tok); e != nil {
		if e.Immediate {
			return e.Primitive(ctx)
		}
		ctx.compile(Callable(e.Primitive))
		return nil
	}

	// A token that starts with ' but is not the ' word itself is a string
	// written without the separating space: 'X' or 'several words'.
	if len(tok) > 1 && tok[0] == '\'' {
		s := tok[1:]
		if strings.HasSuffix(s, "'") {
			s = s[:len(s)-1]
		} else {
			s += ctx.input.consume(matchRune('\''), true, false)
		}
		ctx.compile(String(s))
		return nil
	}

	v, ok := parseLiteral(tok)
	if !ok {
		return UnknownWordError{Token: tok}
	}
	ctx.compile(v)
	return nil
}

// parseLiteral recognizes the handful of token shapes the compiler accepts
// as bare literals when no dictionary entry matches: numbers, and the four
// bareword constants true/false/null/undefined (spec.md §4.3).
func parseLiteral(tok string) (Value, bool) {
	switch tok {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	case "null":
		return Null(), true
	case "undefined":
		return Undefined(), true
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return Number(n), true
	}
	return Value{}, false
}

// compileCoreCall compiles a call to a stable core word, the way boot-source
// helpers written in Go (rather than bootstrapped weft) reach words like
// swap/match without risking a user redefinition shadowing them.
func (ctx *Context) compileCoreCall(name string) {
	prim := ctx.m.dict.CoreWord(name)
	ctx.compile(Callable(prim))
}
