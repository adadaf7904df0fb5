package weft

import (
	"io"
	"strings"
)

// retFrame is a return-stack frame: the dictionary entry currently being
// threaded through, and the index of the next cell to execute (spec.md §3).
type retFrame struct {
	dict *DictEntry
	i    int
}

// Context owns everything spec.md §3 says is private to one invocation: all
// four stacks, the input cursor, halted/paused state, and the host binding
// `me`. Multiple Contexts may share a Machine (and so its dictionary) but
// nothing else (spec.md §5).
type Context struct {
	m *Machine

	parameterStack []Value
	returnStack    []retFrame
	controlStack   []Value
	compilationStack []*DictEntry

	input Cursor

	halted      bool
	paused      bool
	terminalErr error

	executeAtEnd     bool
	didExecuteAtEnd  bool

	me interface{}

	// onPause is invoked when a primitive (namely sleep) sets paused; the
	// embedding host uses it to schedule a timer that calls Query again
	// (spec.md §4.9).
	onPause func(ctx *Context, ms float64, resume func())
}

// NewContext creates a Context in its initial state (spec.md §3 Lifecycle),
// seeded with source as its sole input and execute-at-end enabled so that,
// per spec.md §4.3 step 1, everything compiled gets threaded through once
// input is exhausted.
func (m *Machine) NewContext(source string, readers ...io.Reader) *Context {
	ctx := &Context{m: m, executeAtEnd: true}
	base := &DictEntry{Name: ""}
	ctx.compilationStack = []*DictEntry{base}
	ctx.input.AddReader(strings.NewReader(source))
	for _, r := range readers {
		ctx.input.AddReader(r)
	}
	return ctx
}

// Machine returns the Context's owning Machine.
func (ctx *Context) Machine() *Machine { return ctx.m }

// Me returns the per-invocation host-binding slot (spec.md §3).
func (ctx *Context) Me() interface{} { return ctx.me }

// SetMe sets the per-invocation host-binding slot, used by a DOM/event
// collaborator seeding a fresh Context for an event handler (spec.md §6).
func (ctx *Context) SetMe(me interface{}) { ctx.me = me }

// Halted reports whether the Context has stopped for good.
func (ctx *Context) Halted() bool { return ctx.halted }

// Paused reports whether the Context is suspended pending resumption
// (spec.md §4.9).
func (ctx *Context) Paused() bool { return ctx.paused }

// Reset clears halted/paused so a Context may be driven by a second Query
// call, per spec.md §9's open question about `toggleClass`-style reuse:
// supported, but not advertised as idiomatic.
func (ctx *Context) Reset() {
	ctx.halted = false
	ctx.paused = false
}

// SetOnPause installs the callback sleep uses to ask the host scheduler to
// re-invoke Query after a delay (spec.md §4.9). Without one, sleep is a
// no-op.
func (ctx *Context) SetOnPause(fn func(ctx *Context, ms float64, resume func())) {
	ctx.onPause = fn
}

// SeedReturn pushes a frame directly onto the return stack, bypassing
// EXECUTE — this is how spec.md §4.10's wordToFunc: and §6's DOM/event
// collaborator contract re-enter the engine at a specific entry.
func (ctx *Context) SeedReturn(entry *DictEntry) {
	ctx.returnStack = append(ctx.returnStack, retFrame{dict: entry, i: freshFrame})
}

// Push pushes a Value onto the parameter stack.
func (ctx *Context) Push(v Value) { ctx.parameterStack = append(ctx.parameterStack, v) }

// Pop pops a Value off the parameter stack, failing with StackUnderflowError
// if empty.
func (ctx *Context) Pop() (Value, error) {
	n := len(ctx.parameterStack)
	if n == 0 {
		return Value{}, StackUnderflowError{Stack: "parameter"}
	}
	v := ctx.parameterStack[n-1]
	ctx.parameterStack = ctx.parameterStack[:n-1]
	return v, nil
}

// Peek returns the top of the parameter stack without popping it.
func (ctx *Context) Peek() (Value, error) {
	n := len(ctx.parameterStack)
	if n == 0 {
		return Value{}, StackUnderflowError{Stack: "parameter"}
	}
	return ctx.parameterStack[n-1], nil
}

// ParameterStack exposes the live parameter stack (e.g. for `C . parameterStack`
// style dynamic access, and for tests / dumps).
func (ctx *Context) ParameterStack() []Value { return ctx.parameterStack }

func (ctx *Context) pushControl(v Value) { ctx.controlStack = append(ctx.controlStack, v) }

func (ctx *Context) popControl() (Value, error) {
	n := len(ctx.controlStack)
	if n == 0 {
		return Value{}, StackUnderflowError{Stack: "control"}
	}
	v := ctx.controlStack[n-1]
	ctx.controlStack = ctx.controlStack[:n-1]
	return v, nil
}

func (ctx *Context) peekControl() (Value, error) {
	n := len(ctx.controlStack)
	if n == 0 {
		return Value{}, StackUnderflowError{Stack: "control"}
	}
	return ctx.controlStack[n-1], nil
}

// compilationTarget returns the entry new compiled cells are appended to:
// the top of the compilation stack (spec.md §4.5).
func (ctx *Context) compilationTarget() *DictEntry {
	return ctx.compilationStack[len(ctx.compilationStack)-1]
}

func (ctx *Context) pushCompilationTarget(e *DictEntry) {
	ctx.compilationStack = append(ctx.compilationStack, e)
}

// popCompilationTarget pops the compilation stack, failing
// CompilationStackUnderflowError if only the base (top-level) entry
// remains — this is what makes a bare `;` or `]` an error (spec.md §8).
func (ctx *Context) popCompilationTarget(word string) (*DictEntry, error) {
	if len(ctx.compilationStack) <= 1 {
		return nil, CompilationStackUnderflowError{Word: word}
	}
	n := len(ctx.compilationStack)
	e := ctx.compilationStack[n-1]
	ctx.compilationStack = ctx.compilationStack[:n-1]
	return e, nil
}

// compile appends a cell (Value or Callable) to the current compilation
// target's threaded body (spec.md §4.3/§9).
func (ctx *Context) compile(v Value) {
	t := ctx.compilationTarget()
	t.Compiled = append(t.Compiled, v)
}

// logf forwards to the owning Machine's tracer, if any.
func (ctx *Context) logf(mark, mess string, args ...interface{}) {
	if ctx.m.logfn != nil {
		ctx.m.logfn(mark, mess, args...)
	}
}

// halt stops the Context for good, recording err (nil on ordinary
// end-of-input) as its terminal error.
func (ctx *Context) halt(err error) {
	ctx.halted = true
	ctx.terminalErr = err
}
