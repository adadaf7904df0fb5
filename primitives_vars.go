package weft

import "fmt"

// registerVarWords installs var:/const:/!/@ (spec.md §4.7). ! and @ are
// polymorphic over the two Kinds that carry getter/setter semantics: a
// KindDictEntry token (a var: slot) and a KindCell token (a compiled
// position, the way the boot source's endif, and else/repeat through it,
// reuse ! to backpatch a branch offset).
func registerVarWords(m *Machine) {
	m.defineImmediate("var:", varColonPrim)
	m.defineImmediate("const:", constColonPrim)
	m.define("!", storePrim)
	m.define("@", fetchPrim)
}

// varColonPrim is "var:" (immediate): read a name, define an entry whose
// primitive pushes a reference to its own private slot (an EntryRef Value)
// rather than the slot's contents.
func varColonPrim(ctx *Context) error {
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: "var:"}
	}
	e := ctx.m.dict.Define(name, nil, false)
	e.Slot = Undefined()
	e.Primitive = func(ctx *Context) error {
		ctx.Push(EntryRef(e))
		return nil
	}
	return nil
}

// constColonPrim is "const:" (immediate): read a name, define it to push a
// captured value, and compile into the current target a helper that pops
// the value off the stack and captures it — so the constant takes effect
// at the point in the enclosing body's execution where const: appeared.
func constColonPrim(ctx *Context) error {
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: "const:"}
	}
	e := ctx.m.dict.Define(name, nil, false)
	e.Primitive = func(ctx *Context) error {
		ctx.Push(e.Slot)
		return nil
	}
	ctx.compile(Callable(func(ctx *Context) error {
		v, err := ctx.Pop()
		if err != nil {
			return err
		}
		e.Slot = v
		return nil
	}))
	return nil
}

// storePrim is "!": pop a variable-or-cell token, then pop a value, and
// write it through whichever setter the token's Kind implies.
func storePrim(ctx *Context) error {
	tok, err := ctx.Pop()
	if err != nil {
		return err
	}
	val, err := ctx.Pop()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindDictEntry:
		tok.Entry.Slot = val
	case KindCell:
		storeCell(tok.Cell, val)
	default:
		return fmt.Errorf("! needs a variable or cell, got %v", tok)
	}
	return nil
}

// fetchPrim is "@": pop a variable-or-cell token and push its current value.
func fetchPrim(ctx *Context) error {
	tok, err := ctx.Pop()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindDictEntry:
		ctx.Push(tok.Entry.Slot)
	case KindCell:
		ctx.Push(fetchCell(tok.Cell))
	default:
		return fmt.Errorf("@ needs a variable or cell, got %v", tok)
	}
	return nil
}

func storeCell(c Cell, v Value) {
	for len(c.Entry.Compiled) <= c.Index {
		c.Entry.Compiled = append(c.Entry.Compiled, Undefined())
	}
	c.Entry.Compiled[c.Index] = v
}

func fetchCell(c Cell) Value {
	if c.Index < 0 || c.Index >= len(c.Entry.Compiled) {
		return Undefined()
	}
	return c.Entry.Compiled[c.Index]
}
