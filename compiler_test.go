package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	for _, tc := range []struct {
		tok  string
		want Value
		ok   bool
	}{
		{"true", Bool(true), true},
		{"false", Bool(false), true},
		{"null", Null(), true},
		{"undefined", Undefined(), true},
		{"42", Number(42), true},
		{"-3.5", Number(-3.5), true},
		{"notAnything", Value{}, false},
	} {
		t.Run(tc.tok, func(t *testing.T) {
			got, ok := parseLiteral(tc.tok)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.True(t, tc.want.StrictEqual(got))
			}
		})
	}
}

func TestCompileTokenUnknownWord(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")
	err := ctx.compileToken("nonsenseWord")
	var uwe UnknownWordError
	require.ErrorAs(t, err, &uwe)
	assert.Equal(t, "nonsenseWord", uwe.Token)
}

func TestCompileTokenLiteralGoesOnCompilationTarget(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")
	require.NoError(t, ctx.compileToken("7"))
	target := ctx.compilationTarget()
	require.Len(t, target.Compiled, 1)
	assert.True(t, Number(7).StrictEqual(target.Compiled[0]))
}

func TestDefinitionBehavesLikeItsBodyInline(t *testing.T) {
	m := NewMachine()

	ctxDefined := m.NewContext(`: w 1 2 + ; w`)
	require.NoError(t, ctxDefined.Query())
	require.NoError(t, ctxDefined.TerminalErr())

	ctxInline := m.NewContext(`1 2 +`)
	require.NoError(t, ctxInline.Query())
	require.NoError(t, ctxInline.TerminalErr())

	require.Equal(t, len(ctxInline.ParameterStack()), len(ctxDefined.ParameterStack()))
	for i, v := range ctxInline.ParameterStack() {
		assert.True(t, v.StrictEqual(ctxDefined.ParameterStack()[i]))
	}
}

func TestImmediateRunsAtCompileTime(t *testing.T) {
	m := NewMachine()
	var ran bool
	m.Define("markRan", func(ctx *Context) error {
		ran = true
		return nil
	}, true)

	ctx := m.NewContext(`: w markRan ;`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())
	assert.True(t, ran, "immediate word must run while : w ... ; is being compiled, not when w later executes")
}
