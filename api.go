package weft

// Consume exposes the cursor's raw scan primitive to embedder-defined
// immediate primitives that need to parse inline text the way re/, ', and
// ( do (spec.md §6: "consume — exposed for immediate primitives that
// parse").
func (ctx *Context) Consume(until func(rune) bool, including, ignoreLeadingWhitespace bool) string {
	return ctx.input.consume(runeMatcher(until), including, ignoreLeadingWhitespace)
}

// Word reads one whitespace-delimited token from the cursor, the same way
// the compiler itself does between primitives.
func (ctx *Context) Word() (string, bool) {
	return ctx.input.word()
}

// SkipOneSpace drops exactly one rune of input, the convention parsing
// words use for the mandatory separator between their name and payload.
func (ctx *Context) SkipOneSpace() {
	ctx.input.skipOneSpace()
}

// SetExecuteAtEnd controls whether interpretOne triggers EXECUTE once the
// cursor is exhausted (spec.md §6's DOM/event collaborator contract sets
// this to false before seeding its own return frame).
func (ctx *Context) SetExecuteAtEnd(v bool) { ctx.executeAtEnd = v }

// Halt stops ctx externally (spec.md §5's only supported cancellation:
// "setting halted = true externally; the engine observes the flag at its
// loop boundary"). Safe to call between Query calls, e.g. from a timeout.
func (ctx *Context) Halt(err error) { ctx.halt(err) }

// TerminalErr returns the error (if any) that halted the Context, or nil
// for ordinary end-of-input.
func (ctx *Context) TerminalErr() error { return ctx.terminalErr }
