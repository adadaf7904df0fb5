package weft

import "fmt"

// registerAggregateWords installs array literals, the stack-accessible
// aggregate operations, control-stack transfer words, and each/endeach/I
// (spec.md §4.8).
func registerAggregateWords(m *Machine) {
	m.defineImmediate("[", leftBracketPrim)
	m.defineImmediate("]", rightBracketPrim)
	m.define("[]", func(ctx *Context) error { ctx.Push(NewArray()); return nil })
	m.define("{}", hostNewPrim)

	m.define("push", pushWordPrim)
	m.define("pop", popWordPrim)
	m.define("first", firstPrim)
	m.define("nth", nthWordPrim)
	m.define("clone", clonePrim)
	m.define("collect", collectPrim)
	m.define("spread", spreadPrim)

	m.define(">control", func(ctx *Context) error {
		v, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.pushControl(v)
		return nil
	})
	m.define("control>", func(ctx *Context) error {
		v, err := ctx.popControl()
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	})
	m.define("I", func(ctx *Context) error {
		v, err := ctx.peekControl()
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	})

	m.defineImmediate("each", eachPrim)
	m.defineImmediate("endeach", endeachPrim)
}

// leftBracketPrim is "[" (immediate): open an anonymous compilation target
// for an array literal's body (spec.md §4.8).
func leftBracketPrim(ctx *Context) error {
	anon := &DictEntry{}
	ctx.pushCompilationTarget(anon)
	return nil
}

// rightBracketPrim is "]" (immediate): close the anonymous target and
// compile its captured compiled sequence as a literal Array value. For a
// literal composed purely of numbers/strings/nested arrays this behaves
// exactly like evaluating the enclosed tokens, because the compiler
// appends bare values for literals either way (spec.md §4.8).
func rightBracketPrim(ctx *Context) error {
	e, err := ctx.popCompilationTarget("]")
	if err != nil {
		return err
	}
	items := append([]Value{}, e.Compiled...)
	ctx.compile(ArrayValue(&Array{Items: items}))
	return nil
}

// pushWordPrim is "push": pop a value, pop an array, append, push the
// array back.
func pushWordPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	arrV, err := ctx.Pop()
	if err != nil {
		return err
	}
	if arrV.Kind != KindArray {
		return CloneNonArrayError{Got: arrV}
	}
	arrV.Arr.Items = append(arrV.Arr.Items, v)
	ctx.Push(arrV)
	return nil
}

// popWordPrim is "pop": pop an array, remove its last item, push the
// (shortened) array back, then push the removed item (undefined if empty).
func popWordPrim(ctx *Context) error {
	arrV, err := ctx.Pop()
	if err != nil {
		return err
	}
	if arrV.Kind != KindArray {
		return CloneNonArrayError{Got: arrV}
	}
	n := len(arrV.Arr.Items)
	if n == 0 {
		ctx.Push(arrV)
		ctx.Push(Undefined())
		return nil
	}
	last := arrV.Arr.Items[n-1]
	arrV.Arr.Items = arrV.Arr.Items[:n-1]
	ctx.Push(arrV)
	ctx.Push(last)
	return nil
}

// firstPrim is "first": pop an array, push its first item (undefined if
// empty).
func firstPrim(ctx *Context) error {
	arrV, err := ctx.Pop()
	if err != nil {
		return err
	}
	if arrV.Kind != KindArray {
		return CloneNonArrayError{Got: arrV}
	}
	if len(arrV.Arr.Items) == 0 {
		ctx.Push(Undefined())
		return nil
	}
	ctx.Push(arrV.Arr.Items[0])
	return nil
}

// nthWordPrim is "nth": pop an index, pop an array, push the item at that
// index (undefined if out of bounds).
func nthWordPrim(ctx *Context) error {
	idxV, err := ctx.Pop()
	if err != nil {
		return err
	}
	arrV, err := ctx.Pop()
	if err != nil {
		return err
	}
	if arrV.Kind != KindArray {
		return CloneNonArrayError{Got: arrV}
	}
	i := int(idxV.Num)
	if i < 0 || i >= len(arrV.Arr.Items) {
		ctx.Push(Undefined())
		return nil
	}
	ctx.Push(arrV.Arr.Items[i])
	return nil
}

// clonePrim is "clone": pop an array, push a shallow copy so the caller's
// array is unaffected by further mutation — fails CloneNonArrayError for
// anything else (spec.md §4.8).
func clonePrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	if v.Kind != KindArray {
		return CloneNonArrayError{Got: v}
	}
	ctx.Push(ArrayValue(&Array{Items: append([]Value{}, v.Arr.Items...)}))
	return nil
}

// collectPrim is "collect": pop a count N, then pop N values off the
// parameter stack (deepest first) and push them as a new array — the
// inverse of spread.
func collectPrim(ctx *Context) error {
	nV, err := ctx.Pop()
	if err != nil {
		return err
	}
	n := int(nV.Num)
	if n < 0 || n > len(ctx.parameterStack) {
		return fmt.Errorf("collect %d: not enough values on the stack", n)
	}
	start := len(ctx.parameterStack) - n
	items := append([]Value{}, ctx.parameterStack[start:]...)
	ctx.parameterStack = ctx.parameterStack[:start]
	ctx.Push(ArrayValue(&Array{Items: items}))
	return nil
}

// spreadPrim is "spread": pop an array and push each of its items in
// order.
func spreadPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	if v.Kind != KindArray {
		return CloneNonArrayError{Got: v}
	}
	for _, item := range v.Arr.Items {
		ctx.Push(item)
	}
	return nil
}

// eachPrim is "each" (immediate): compiles the loop setup described in
// spec.md §4.8 — guard, clone, push array+index onto the control stack,
// then a loop-test cell and a forward-branch placeholder that endeach
// backpatches.
func eachPrim(ctx *Context) error {
	t := ctx.compilationTarget()

	ctx.compile(Callable(eachSetupPrim))

	loopTop := Cell{Entry: t, Index: len(t.Compiled)}
	ctx.compile(Callable(eachTestPrim))

	placeholder := Cell{Entry: t, Index: len(t.Compiled)}
	ctx.compile(Number(0))

	ctx.pushControl(CellRef(loopTop))
	ctx.pushControl(CellRef(placeholder))
	return nil
}

// endeachPrim is "endeach" (immediate): compiles the tail (advance the
// index, branch back to the loop test) and backpatches the forward branch
// eachPrim left pointing past the loop body.
func endeachPrim(ctx *Context) error {
	placeholderV, err := ctx.popControl()
	if err != nil {
		return err
	}
	loopTopV, err := ctx.popControl()
	if err != nil {
		return err
	}
	if placeholderV.Kind != KindCell || loopTopV.Kind != KindCell {
		return fmt.Errorf("endeach without a matching each")
	}
	t := ctx.compilationTarget()

	ctx.compile(Callable(eachTailPrim))
	backOffset := loopTopV.Cell.Index - len(t.Compiled)
	ctx.compile(Number(float64(backOffset)))

	after := len(t.Compiled)
	storeCell(placeholderV.Cell, Number(float64(after-placeholderV.Cell.Index)))
	return nil
}

// eachSetupPrim is the runtime half of eachPrim's first compiled cell: pop
// an array, clone it (callers' arrays are never mutated by iteration), and
// push { array, index 0 } onto the control stack.
func eachSetupPrim(ctx *Context) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	if v.Kind != KindArray {
		return EachNeedsArrayError{Got: v}
	}
	cloned := &Array{Items: append([]Value{}, v.Arr.Items...)}
	ctx.pushControl(ArrayValue(cloned))
	ctx.pushControl(Number(0))
	return nil
}

// eachTestPrim is the loop-test cell: pop index then array off the control
// stack. If exhausted, branch forward past the loop body (consuming the
// offset placeholder and leaving nothing on the control stack). Otherwise
// restore array+index and push the current element, then step over the
// placeholder to fall into the loop body.
func eachTestPrim(ctx *Context) error {
	idxV, err := ctx.popControl()
	if err != nil {
		return err
	}
	arrV, err := ctx.popControl()
	if err != nil {
		return err
	}
	fr, err := currentFrame(ctx)
	if err != nil {
		return err
	}

	idx := int(idxV.Num)
	if idx >= len(arrV.Arr.Items) {
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

	ctx.pushControl(arrV)
	ctx.pushControl(idxV)
	ctx.pushControl(arrV.Arr.Items[idx])
	stepOverOffset(fr)
	return nil
}

// eachTailPrim is endeach's compiled tail: drop the current element,
// increment the index, and branch back to the loop test.
func eachTailPrim(ctx *Context) error {
	if _, err := ctx.popControl(); err != nil {
		return err
	}
	idxV, err := ctx.popControl()
	if err != nil {
		return err
	}
	ctx.pushControl(Number(idxV.Num + 1))

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
