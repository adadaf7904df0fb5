package weft

import "fmt"

// registerHostBridgeWords installs the dynamic property/apply/construct
// words that reach through the host bridge seam (spec.md §4.10): `.`,
// `.!`, `jsApply`, `.apply:`, `wordToFunc:`, and `C` (push the running
// Context as an opaque host object, for e.g. `C . parameterStack`-style
// introspection from embedded code).
func registerHostBridgeWords(m *Machine) {
	m.defineImmediate(".", dotGetPrim)
	m.defineImmediate(".!", dotSetPrim)
	m.define("jsApply", jsApplyPrim)
	m.defineImmediate(".apply:", dotApplyColonPrim)
	m.defineImmediate("wordToFunc:", wordToFuncColonPrim)
	m.define("C", func(ctx *Context) error { ctx.Push(Object(ctx)); return nil })
}

func hostNewPrim(ctx *Context) error {
	obj, err := ctx.m.bridge.New()
	if err != nil {
		return err
	}
	ctx.Push(Object(obj))
	return nil
}

// dotGetPrim is "." (immediate): skip one space, read a property name, and
// compile a helper that, at runtime, pops a host object and pushes the
// named property (spec.md §4.10).
func dotGetPrim(ctx *Context) error {
	ctx.input.skipOneSpace()
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: "."}
	}
	ctx.compile(Callable(func(ctx *Context) error {
		objV, err := ctx.Pop()
		if err != nil {
			return err
		}
		res, err := ctx.m.bridge.Get(objV.Obj, name)
		if err != nil {
			return err
		}
		ctx.Push(wrapHostValue(res))
		return nil
	}))
	return nil
}

// dotSetPrim is ".!" (immediate): skip one space, read a property name, and
// compile a helper that pops an object then a value and assigns it.
func dotSetPrim(ctx *Context) error {
	ctx.input.skipOneSpace()
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: ".!"}
	}
	ctx.compile(Callable(func(ctx *Context) error {
		objV, err := ctx.Pop()
		if err != nil {
			return err
		}
		val, err := ctx.Pop()
		if err != nil {
			return err
		}
		return ctx.m.bridge.Set(objV.Obj, name, unwrapHostValue(val))
	}))
	return nil
}

// jsApplyPrim is "jsApply": pop an argument array, then a callable; invoke
// it through the host bridge (for an opaque host function) or directly (for
// a wordToFunc: value), and push the result.
func jsApplyPrim(ctx *Context) error {
	argsV, err := ctx.Pop()
	if err != nil {
		return err
	}
	fnV, err := ctx.Pop()
	if err != nil {
		return err
	}
	if argsV.Kind != KindArray {
		return fmt.Errorf("jsApply needs an argument array, got %v", argsV)
	}
	return ctx.applyCallable(fnV, argsV.Arr.Items)
}

// dotApplyColonPrim is ".apply: NAME" (immediate): skip one space, read a
// method name, and compile a helper that pops (object, argsArray) and
// invokes object.NAME(...args) through the host bridge.
func dotApplyColonPrim(ctx *Context) error {
	ctx.input.skipOneSpace()
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: ".apply:"}
	}
	ctx.compile(Callable(func(ctx *Context) error {
		argsV, err := ctx.Pop()
		if err != nil {
			return err
		}
		objV, err := ctx.Pop()
		if err != nil {
			return err
		}
		if argsV.Kind != KindArray {
			return fmt.Errorf(".apply: needs an argument array, got %v", argsV)
		}
		method, err := ctx.m.bridge.Get(objV.Obj, name)
		if err != nil {
			return err
		}
		res, err := ctx.m.bridge.Apply(method, unwrapHostValues(argsV.Arr.Items))
		if err != nil {
			return err
		}
		ctx.Push(wrapHostValue(res))
		return nil
	}))
	return nil
}

// hostFunc is the Object payload wordToFunc: pushes: a Go closure that
// drives a fresh Context from a named entry, the core-only (no host
// runtime) half of spec.md §4.10's "materialize a callable value".
type hostFunc struct {
	m     *Machine
	entry *DictEntry
}

func (hf hostFunc) call(args []Value) (Value, error) {
	ctx := hf.m.NewContext("")
	ctx.executeAtEnd = false
	for _, a := range args {
		ctx.Push(a)
	}
	ctx.SeedReturn(hf.entry)
	if err := ctx.Query(); err != nil {
		return Value{}, err
	}
	if v, err := ctx.Peek(); err == nil {
		return v, nil
	}
	return Undefined(), nil
}

// wordToFuncColonPrim is "wordToFunc: NAME" (immediate): read NAME, find
// its entry, and push a host-callable value wrapping a fresh-Context
// invocation of it (spec.md §4.10).
func wordToFuncColonPrim(ctx *Context) error {
	name, ok := ctx.input.word()
	if !ok {
		return UnknownWordError{Token: "wordToFunc:"}
	}
	e := ctx.m.dict.Find(name)
	if e == nil {
		return UnknownWordError{Token: name}
	}
	ctx.Push(Object(hostFunc{m: ctx.m, entry: e}))
	return nil
}

// applyCallable invokes a Value that is either a hostFunc (from
// wordToFunc:) or an opaque bridge-owned function, pushing its result.
func (ctx *Context) applyCallable(fnV Value, args []Value) error {
	if hf, ok := fnV.Obj.(hostFunc); ok {
		res, err := hf.call(args)
		if err != nil {
			return err
		}
		ctx.Push(res)
		return nil
	}
	res, err := ctx.m.bridge.Apply(fnV.Obj, unwrapHostValues(args))
	if err != nil {
		return err
	}
	ctx.Push(wrapHostValue(res))
	return nil
}

// wrapHostValue/unwrapHostValue translate between the engine's tagged
// Value and the plain interface{} the hostbridge.Bridge seam speaks, so
// the bridge implementation never needs to import this package.
func wrapHostValue(res interface{}) Value {
	switch v := res.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case float64:
		return Number(v)
	case bool:
		return Bool(v)
	case string:
		return String(v)
	default:
		return Object(v)
	}
}

func unwrapHostValue(v Value) interface{} {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str
	case KindNull, KindUndefined:
		return nil
	case KindObject:
		return v.Obj
	default:
		return v
	}
}

func unwrapHostValues(vs []Value) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = unwrapHostValue(v)
	}
	return out
}
