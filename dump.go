package weft

import (
	"fmt"
	"io"
)

// Dump prints a diagnostic snapshot of ctx to w: the dictionary chain, the
// parameter, return and control stacks, and the compilation-stack depth. It generalizes the
// teacher's vmDumper (which walked a linear memory image) to the tagged
// Value model, where there is no memory to walk — only named entries and
// stacks of Values.
func (ctx *Context) Dump(w io.Writer) {
	fmt.Fprintf(w, "# Context Dump\n")
	fmt.Fprintf(w, "  halted: %v  paused: %v\n", ctx.halted, ctx.paused)
	if ctx.terminalErr != nil {
		fmt.Fprintf(w, "  terminalErr: %v\n", ctx.terminalErr)
	}

	fmt.Fprintf(w, "  dict:")
	n := 0
	for e := ctx.m.dict.Latest(); e != nil; e = e.Previous {
		fmt.Fprintf(w, " %s", e.Name)
		n++
		if n >= 32 {
			fmt.Fprintf(w, " ...")
			break
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  parameter stack:")
	for _, v := range ctx.parameterStack {
		fmt.Fprintf(w, " %v", v)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  return stack:")
	for _, fr := range ctx.returnStack {
		name := fr.dict.Name
		if name == "" {
			name = "<anon>"
		}
		fmt.Fprintf(w, " %s+%d", name, fr.i)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  control stack:")
	for _, v := range ctx.controlStack {
		fmt.Fprintf(w, " %v", v)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  compilation depth: %d\n", len(ctx.compilationStack))
}
