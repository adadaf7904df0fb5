package weft

// registerDefineWords installs the definition-time primitives of spec.md
// §4.5: `:`, `;`, `immediate`, `postpone`, `tick`, `lit`, `,`, and
// `compileNow:`.
func registerDefineWords(m *Machine) {
	m.defineImmediate(":", colonPrim)
	m.defineImmediate(";", semicolonPrim)
	m.defineImmediate("immediate", immediatePrim)
	m.defineImmediate("postpone", postponePrim)
	m.define("tick", fetchInlineCell)
	m.define("lit", fetchInlineCell)
	m.define(",", commaPrim)
	m.defineImmediate("compileNow:", compileNowPrim)
}

// colonPrim is ":" (immediate): read a name, define an entry whose
// Primitive is the classic DOCOL (docol), and push it as the new
// compilation target (spec.md §4.5).
func colonPrim(ctx *Context) error {
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: ":"}
	}
	e := ctx.m.dict.Define(name, nil, false)
	e.Primitive = docol(e)
	ctx.pushCompilationTarget(e)
	return nil
}

// semicolonPrim is ";" (immediate): close the current definition by popping
// the compilation stack. No explicit exit cell is compiled — the executor's
// end-of-body check in innerNext calls exit automatically once a frame's
// index runs off the end of its compiled sequence (spec.md §4.5).
func semicolonPrim(ctx *Context) error {
	_, err := ctx.popCompilationTarget(";")
	return err
}

// immediatePrim marks the current compilation target (the top of the
// compilation stack, i.e. the definition still open) as immediate; after `;`
// has closed a definition, it marks whatever target is then on top.
func immediatePrim(ctx *Context) error {
	ctx.compilationTarget().Immediate = true
	return nil
}

// postponePrim is "postpone" (immediate, spec.md §4.5): read the next word.
// If it is immediate, compile its primitive directly (one-level defer: its
// immediate action fires when the enclosing definition runs). Otherwise
// compile a helper that, when that helper runs, compiles the target's
// primitive (two-level defer, for a plain runtime word).
func postponePrim(ctx *Context) error {
	tok, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: "postpone"}
	}
	e := ctx.m.dict.Find(tok)
	if e == nil {
		return UnknownWordError{Token: tok}
	}
	if e.Immediate {
		ctx.compile(Callable(e.Primitive))
		return nil
	}
	target := e
	ctx.compile(Callable(func(ctx *Context) error {
		ctx.compile(Callable(target.Primitive))
		return nil
	}))
	return nil
}

// commaPrim is "," : pop a value and append it to the current compilation
// target's compiled sequence (spec.md §4.6).
func commaPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	ctx.compile(v)
	return nil
}

// compileNowPrim is "compileNow:" (immediate): read the next word; if it
// parses as a literal (number, true/false/null/undefined), append the raw
// value straight to the current compilation target, bypassing the usual
// `lit`/`tick` pairing a quoted literal otherwise needs. Fails otherwise
// (spec.md §4.5).
func compileNowPrim(ctx *Context) error {
	tok, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: "compileNow:"}
	}
	v, ok := parseLiteral(tok)
	if !ok {
		return CompileNowNotPrimitiveError{Token: tok}
	}
	ctx.compile(v)
	return nil
}
