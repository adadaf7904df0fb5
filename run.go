package weft

import (
	"errors"
	"io"

	"github.com/weft-lang/weft/internal/panicerr"
)

// Run drives ctx to completion like Query, but recovers any panic escaping
// the primitive call stack into a plain error (spec.md §5 only documents
// cooperative halting; a misbehaving host-bridge callback or a primitive bug
// should not take the embedding process down with it). Mirrors the
// teacher's VM.Run(ctx) wrapping vm.run in panicerr.Recover.
func (ctx *Context) Run() error {
	err := panicerr.Recover("weft", func() error {
		return ctx.Query()
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
