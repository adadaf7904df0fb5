package weft

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags the dynamic type carried by a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindRegex
	KindNull
	KindUndefined
	KindArray
	KindObject
	KindDictEntry
	KindCell
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindRegex:
		return "regex"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindDictEntry:
		return "dict-entry"
	case KindCell:
		return "cell"
	case KindCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// Primitive is a core implementation: a function over the running Context.
// It is the Callable member of the Value sum type (spec.md §3).
type Primitive func(ctx *Context) error

// Cell addresses a single position inside a DictEntry's compiled sequence.
// It realizes spec.md §4.6/§9's CompiledCell: "here" yields a Cell bound to
// a specific entry, and -stackFrame requires same-entry subtraction.
type Cell struct {
	Entry *DictEntry
	Index int
}

// Array is an owned, mutable sequence of Value, per spec.md §3.
type Array struct {
	Items []Value
}

// Value is the tagged union threaded through every stack in the engine.
// A CompiledItem (spec.md §3/§9) is just a Value: Kind == KindCallable
// cells are invoked by the executor, every other Kind is pushed verbatim.
type Value struct {
	Kind  Kind
	Num   float64
	Bool  bool
	Str   string
	Regex *regexp.Regexp
	Arr   *Array
	Obj   interface{}
	Entry *DictEntry
	Cell  Cell
	Fn    Primitive
}

func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Regex(re *regexp.Regexp) Value {
	return Value{Kind: KindRegex, Regex: re}
}
func Null() Value      { return Value{Kind: KindNull} }
func Undefined() Value { return Value{Kind: KindUndefined} }
func ArrayValue(a *Array) Value {
	if a == nil {
		a = &Array{}
	}
	return Value{Kind: KindArray, Arr: a}
}
func NewArray() Value { return ArrayValue(&Array{}) }
func Object(obj interface{}) Value {
	return Value{Kind: KindObject, Obj: obj}
}
func EntryRef(e *DictEntry) Value { return Value{Kind: KindDictEntry, Entry: e} }
func CellRef(c Cell) Value        { return Value{Kind: KindCell, Cell: c} }
func Callable(fn Primitive) Value { return Value{Kind: KindCallable, Fn: fn} }

// IsCallable reports whether this compiled cell should be invoked (rather
// than pushed) by the executor's inner loop (spec.md §4.4).
func (v Value) IsCallable() bool { return v.Kind == KindCallable }

// Truthy implements the host's JavaScript-like truthiness rules (spec.md
// §3): false, 0, NaN, "", null, undefined are falsy; everything else,
// including empty arrays and objects, is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindString:
		return v.Str != ""
	case KindNull, KindUndefined:
		return false
	default:
		return true
	}
}

// StrictEqual implements === : same Kind and same underlying value: no
// coercion between Kinds (e.g. Number(0) !== String("")).
func (v Value) StrictEqual(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindString:
		return v.Str == o.Str
	case KindNull, KindUndefined:
		return true
	case KindArray:
		return v.Arr == o.Arr
	case KindObject:
		return v.Obj == o.Obj
	case KindDictEntry:
		return v.Entry == o.Entry
	case KindCell:
		return v.Cell == o.Cell
	case KindRegex:
		return v.Regex == o.Regex
	case KindCallable:
		return fmt.Sprintf("%p", v.Fn) == fmt.Sprintf("%p", o.Fn)
	default:
		return false
	}
}

// LooseEqual implements == : null and undefined compare equal to each
// other (and only to each other); Number/String/Bool coerce pairwise the
// way JavaScript's abstract equality does for these Kinds; everything
// else falls back to StrictEqual.
func (v Value) LooseEqual(o Value) bool {
	if v.Kind == o.Kind {
		return v.StrictEqual(o)
	}
	if (v.Kind == KindNull || v.Kind == KindUndefined) && (o.Kind == KindNull || o.Kind == KindUndefined) {
		return true
	}
	if v.Kind == KindNull || v.Kind == KindUndefined || o.Kind == KindNull || o.Kind == KindUndefined {
		return false
	}
	vn, vok := v.coerceNumber()
	on, ook := o.coerceNumber()
	if vok && ook {
		return vn == on
	}
	return false
}

func (v Value) coerceNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String formats a Value for debug dumps and tracing.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return fmt.Sprintf("%g", v.Num)
	case KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindRegex:
		if v.Regex != nil {
			return "/" + v.Regex.String() + "/"
		}
		return "/<nil>/"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.Arr.Items))
	case KindObject:
		return fmt.Sprintf("<object %T>", v.Obj)
	case KindDictEntry:
		if v.Entry != nil {
			return "&" + v.Entry.Name
		}
		return "&<anon>"
	case KindCell:
		name := "<anon>"
		if v.Cell.Entry != nil {
			name = v.Cell.Entry.Name
		}
		return fmt.Sprintf("cell(%v+%v)", name, v.Cell.Index)
	case KindCallable:
		return "<callable>"
	default:
		return "<?>"
	}
}
