package weft

// registerCorePrimitives installs every C7 primitive word named by
// spec.md §4 into m's dictionary. Grounded on the teacher's vm.go
// definePrimitives switch, generalized from opcodes to named dictionary
// entries operating on tagged Values instead of bare ints.
func registerCorePrimitives(m *Machine) {
	registerStackWords(m)
	registerArithWords(m)
	registerCompareWords(m)
	registerDefineWords(m)
	registerControlWords(m)
	registerVarWords(m)
	registerParseWords(m)
	registerAggregateWords(m)
	registerHostBridgeWords(m)
	registerMiscWords(m)
}

func (m *Machine) define(name string, prim Primitive) {
	m.dict.Define(name, prim, false)
}

func (m *Machine) defineImmediate(name string, prim Primitive) {
	m.dict.Define(name, prim, true)
}

// registerStackWords installs the classic Forth stack-shuffling set.
func registerStackWords(m *Machine) {
	m.define("dup", func(ctx *Context) error {
		v, err := ctx.Peek()
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	})
	m.define("drop", func(ctx *Context) error {
		_, err := ctx.Pop()
		return err
	})
	m.define("swap", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(b)
		ctx.Push(a)
		return nil
	})
	m.define("over", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(a)
		ctx.Push(b)
		ctx.Push(a)
		return nil
	})
	m.define("rot", func(ctx *Context) error {
		c, err := ctx.Pop()
		if err != nil {
			return err
		}
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(b)
		ctx.Push(c)
		ctx.Push(a)
		return nil
	})
	m.define("-rot", func(ctx *Context) error {
		c, err := ctx.Pop()
		if err != nil {
			return err
		}
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(c)
		ctx.Push(a)
		ctx.Push(b)
		return nil
	})
	m.define("nip", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		if _, err := ctx.Pop(); err != nil {
			return err
		}
		ctx.Push(b)
		return nil
	})
	m.define("tuck", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(b)
		ctx.Push(a)
		ctx.Push(b)
		return nil
	})
	m.define("depth", func(ctx *Context) error {
		ctx.Push(Number(float64(len(ctx.parameterStack))))
		return nil
	})
}

func binaryNumeric(name string, fn func(a, b float64) float64) Primitive {
	return func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Number(fn(a.Num, b.Num)))
		return nil
	}
}

// registerArithWords installs +, -, *, /, mod, neg — spec.md §3's Number is
// a plain float64, so these are direct float64 arithmetic (no numeric
// tower; see SPEC_FULL.md Non-goals).
func registerArithWords(m *Machine) {
	m.define("+", binaryNumeric("+", func(a, b float64) float64 { return a + b }))
	m.define("-", binaryNumeric("-", func(a, b float64) float64 { return a - b }))
	m.define("*", binaryNumeric("*", func(a, b float64) float64 { return a * b }))
	m.define("/", binaryNumeric("/", func(a, b float64) float64 { return a / b }))
	m.define("mod", binaryNumeric("mod", func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		r := a - b*float64(int64(a/b))
		return r
	}))
	m.define("neg", func(ctx *Context) error {
		v, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Number(-v.Num))
		return nil
	})
}

func comparisonNumeric(fn func(a, b float64) bool) Primitive {
	return func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(fn(a.Num, b.Num)))
		return nil
	}
}

// registerCompareWords installs relational comparisons and the dual
// loose/strict equality words spec.md §3 requires (== vs ===).
func registerCompareWords(m *Machine) {
	m.define("<", comparisonNumeric(func(a, b float64) bool { return a < b }))
	m.define(">", comparisonNumeric(func(a, b float64) bool { return a > b }))
	m.define("<=", comparisonNumeric(func(a, b float64) bool { return a <= b }))
	m.define(">=", comparisonNumeric(func(a, b float64) bool { return a >= b }))

	m.define("==", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(a.LooseEqual(b)))
		return nil
	})
	m.define("===", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(a.StrictEqual(b)))
		return nil
	})
	m.define("!=", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(!a.LooseEqual(b)))
		return nil
	})
	m.define("!==", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(!a.StrictEqual(b)))
		return nil
	})
	m.define("not", func(ctx *Context) error {
		v, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(!v.Truthy()))
		return nil
	})
	m.define("and", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(a.Truthy() && b.Truthy()))
		return nil
	})
	m.define("or", func(ctx *Context) error {
		b, err := ctx.Pop()
		if err != nil {
			return err
		}
		a, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.Push(Bool(a.Truthy() || b.Truthy()))
		return nil
	})
}

// registerControlWords installs the raw primitives spec.md §4.6 builds
// if/else/endif/begin/until/again/repeat/ahead/<back out of in the boot
// source, plus EXECUTE and exit, directly addressable for embedders.
func registerControlWords(m *Machine) {
	m.define("branch", branchPrim)
	m.define("0branch", zeroBranchPrim)
	m.define("falsyBranch", falsyBranchPrim)
	m.define("here", herePrim)
	m.define("-stackFrame", stackFramePrim)
	m.define("exit", exitPrim)
	m.defineImmediate("EXECUTE", executePrim)
}
