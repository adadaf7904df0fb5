package weft

import "math"

// retFrame.i follows the teacher's "address already advanced" convention
// (gothird's vm.prog points at the next cell to fetch): a freshly pushed
// frame starts at i == -1 so that innerNext's advance-then-fetch step lands
// on index 0 first, matching spec.md §4.4's worked example ("3 5 +" -> [8]).
const freshFrame = -1

// Query runs the engine (spec.md §4.4's "main loop") until the Context
// halts or pauses. A paused Context is resumed by calling Query again once
// the host's timer (see SetOnPause) fires.
func (ctx *Context) Query() error {
	for !ctx.halted && !ctx.paused {
		if err := ctx.step(); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) step() error {
	if len(ctx.returnStack) > 0 {
		return ctx.innerNext()
	}
	return ctx.interpretOne()
}

// innerNext advances the top return frame and either invokes the fetched
// cell (if Callable) or pushes it verbatim (spec.md §4.4).
func (ctx *Context) innerNext() error {
	n := len(ctx.returnStack)
	fr := &ctx.returnStack[n-1]
	fr.i++

	if fr.i >= len(fr.dict.Compiled) {
		return exitPrim(ctx)
	}

	if ctx.m.logfn != nil {
		ctx.traceStep(fr)
	}

	cell := fr.dict.Compiled[fr.i]
	if cell.IsCallable() {
		return cell.Fn(ctx)
	}
	ctx.Push(cell)
	return nil
}

func (ctx *Context) traceStep(fr *retFrame) {
	name := fr.dict.Name
	if name == "" {
		name = "<anon>"
	}
	ctx.logf(".", "%v+%v %v r:%v s:%v", name, fr.i, fr.dict.Compiled[fr.i], len(ctx.returnStack), ctx.parameterStack)
}

// exitPrim is the "exit" primitive (spec.md §4.1/§4.4): leave the currently
// running definition by popping its return frame.
func exitPrim(ctx *Context) error {
	n := len(ctx.returnStack)
	if n == 0 {
		return ReturnStackUnderflowError{}
	}
	ctx.returnStack = ctx.returnStack[:n-1]
	return nil
}

// docol implements spec.md §4.5's "classic DOCOL": entering a `:`-defined
// word pushes a fresh return frame threading through its compiled body.
func docol(entry *DictEntry) Primitive {
	return func(ctx *Context) error {
		ctx.returnStack = append(ctx.returnStack, retFrame{dict: entry, i: freshFrame})
		return nil
	}
}

// executePrim implements spec.md §4.4's EXECUTE: push { dict = top of the
// compilation stack, i = fresh } onto the return stack, which is how
// end-of-input begins threaded execution of everything compiled so far,
// and how wordToFunc: materializes a callable value.
func executePrim(ctx *Context) error {
	target := ctx.compilationTarget()
	ctx.returnStack = append(ctx.returnStack, retFrame{dict: target, i: freshFrame})
	return nil
}

// currentFrame returns the top return frame, failing if the primitive that
// needs it (branch family) was somehow invoked outside of threaded
// execution.
func currentFrame(ctx *Context) (*retFrame, error) {
	n := len(ctx.returnStack)
	if n == 0 {
		return nil, ReturnStackUnderflowError{}
	}
	return &ctx.returnStack[n-1], nil
}

// readInlineCell reads the cell immediately following the current frame
// position without executing it -- the mechanism shared by branch,
// 0branch, falsyBranch, tick, and lit (spec.md §4.6, §4.5).
func readInlineCell(fr *retFrame) (Value, int, error) {
	idx := fr.i + 1
	if idx < 0 || idx >= len(fr.dict.Compiled) {
		return Value{}, 0, BadBranchError{}
	}
	return fr.dict.Compiled[idx], idx, nil
}

func finiteNumber(v Value) (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return 0, false
	}
	return v.Num, true
}

// takeBranch commits to branching: the frame's i is set so that the next
// innerNext fetch lands at (offset cell's index) + offset, per spec.md
// §4.6's worked arithmetic for here/-stackFrame driven control flow.
func takeBranch(fr *retFrame, offset float64) {
	fr.i += int(offset)
}

// stepOverOffset skips past the inline offset cell without branching: the
// next innerNext fetch lands immediately after it.
func stepOverOffset(fr *retFrame) {
	fr.i++
}

// branchPrim is the "branch" primitive (spec.md §4.6): the following
// compiled cell is a signed offset relative to the current frame's
// position; always branch.
func branchPrim(ctx *Context) error {
	fr, err := currentFrame(ctx)
	if err != nil {
		return err
	}
	off, _, err := readInlineCell(fr)
	if err != nil {
		return err
	}
	n, ok := finiteNumber(off)
	if !ok {
		return BadBranchError{Got: off}
	}
	takeBranch(fr, n)
	return nil
}

// zeroBranchPrim is "0branch": pop a value that must be a finite number
// (else BadStackForZeroBranchError); branch only if it is exactly 0.
func zeroBranchPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	n, ok := finiteNumber(v)
	if !ok {
		return BadStackForZeroBranchError{Got: v}
	}

	fr, err := currentFrame(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		off, _, err := readInlineCell(fr)
		if err != nil {
			return err
		}
		offN, ok := finiteNumber(off)
		if !ok {
			return BadBranchError{Got: off}
		}
		takeBranch(fr, offN)
	} else {
		stepOverOffset(fr)
	}
	return nil
}

// falsyBranchPrim is "falsyBranch": pop a value of any type; branch if it
// is falsy by spec.md §3's JavaScript-like rules, with no type check.
func falsyBranchPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}

	fr, err := currentFrame(ctx)
	if err != nil {
		return err
	}
	if !v.Truthy() {
		off, _, err := readInlineCell(fr)
		if err != nil {
			return err
		}
		offN, ok := finiteNumber(off)
		if !ok {
			return BadBranchError{Got: off}
		}
		takeBranch(fr, offN)
	} else {
		stepOverOffset(fr)
	}
	return nil
}

// herePrim pushes a Cell at the current position of the top compilation
// target (spec.md §4.6).
func herePrim(ctx *Context) error {
	t := ctx.compilationTarget()
	ctx.Push(CellRef(Cell{Entry: t, Index: len(t.Compiled)}))
	return nil
}

// stackFramePrim is "-stackFrame": pop two Cells (b, a); fail
// BadStackFrameError unless both are Cells in the same entry; push a.i-b.i.
func stackFramePrim(ctx *Context) error {
	b, err := ctx.Pop()
	if err != nil {
		return err
	}
	a, err := ctx.Pop()
	if err != nil {
		return err
	}
	if a.Kind != KindCell || b.Kind != KindCell || a.Cell.Entry != b.Cell.Entry {
		return BadStackFrameError{A: a, B: b}
	}
	ctx.Push(Number(float64(a.Cell.Index - b.Cell.Index)))
	return nil
}

// fetchInlineCell is shared by tick and lit: read the next compiled cell
// without executing it, push it, and advance the frame past it.
func fetchInlineCell(ctx *Context) error {
	fr, err := currentFrame(ctx)
	if err != nil {
		return err
	}
	v, idx, err := readInlineCell(fr)
	if err != nil {
		return err
	}
	ctx.Push(v)
	fr.i = idx
	return nil
}
