package weft

// registerMiscWords installs sleep (spec.md §4.9), the supplemented quit
// word (SPEC_FULL.md), and throwNewError (spec.md §7's UserThrow).
func registerMiscWords(m *Machine) {
	m.define("sleep", sleepPrim)
	m.define("quit", quitPrim)
	m.define("throwNewError", throwNewErrorPrim)
}

// sleepPrim is "sleep": pop a millisecond count, set paused, and ask the
// host scheduler (via onPause) to resume by calling Query again after that
// delay (spec.md §4.9). With no scheduler installed, sleep is a no-op:
// there is nothing to cooperate with, so the Context simply keeps running.
func sleepPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	if ctx.onPause == nil {
		return nil
	}
	ctx.paused = true
	ctx.onPause(ctx, v.Num, func() { ctx.paused = false })
	return nil
}

// quitPrim is "quit": truncate the return stack back to its outermost
// frame, abandoning every nested call in flight, and let the main loop
// re-enter interpret (spec.md's Open Question, resolved in SPEC_FULL.md:
// length 1, not fully emptied, so the top-level EXECUTE frame survives to
// be drained by exit in the ordinary way).
func quitPrim(ctx *Context) error {
	if len(ctx.returnStack) > 1 {
		ctx.returnStack = ctx.returnStack[:1]
	}
	return nil
}

// throwNewErrorPrim is "throwNewError": pop a message and fail with
// UserThrowError (spec.md §7).
func throwNewErrorPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	msg := v.Str
	if v.Kind != KindString {
		msg = v.String()
	}
	return UserThrowError{Message: msg}
}
