package weft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndScenarios(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []Value
	}{
		{"add", `3 5 +`, []Value{Number(8)}},
		{"neg-rot", `111 222 333 -rot`, []Value{Number(333), Number(111), Number(222)}},
		{"colon-call", `: inner 3 ; : outer 4 inner ; outer`, []Value{Number(4), Number(3)}},
		{"if-else", `: iffy true if true else 'X' endif ; iffy`, []Value{Bool(true)}},
		{"begin-until", `: count begin 1 - dup 1 < until ; 5 count 0 ===`, []Value{Bool(true)}},
		{"each-sum", `0 [ 3 5 7 ] : addall each I + endeach ; addall`, []Value{Number(15)}},
		{"var-store-fetch", `var: v 5 v ! v @`, []Value{Number(5)}},
		{"regex-match", `re/ e\\d+/ ' te123st' match first ' e123' ===`, []Value{Bool(true)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			ctx := m.NewContext(tc.src)
			require.NoError(t, ctx.Query())
			require.NoError(t, ctx.TerminalErr())

			got := ctx.ParameterStack()
			require.Len(t, got, len(tc.want))
			for i, want := range tc.want {
				assert.Truef(t, want.StrictEqual(got[i]), "stack[%d]: want %v got %v", i, want, got[i])
			}
		})
	}
}

func TestErrorScenarios(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		target error
	}{
		{"bare-semicolon", `;`, CompilationStackUnderflowError{}},
		{"unknown-word", `thisWordIsUndefined`, UnknownWordError{}},
		{"bad-branch", `: b branch ' f' ; b`, BadBranchError{}},
		{"clone-non-array", `5 clone`, CloneNonArrayError{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			ctx := m.NewContext(tc.src)
			err := ctx.Query()
			require.Error(t, err)
			assert.True(t, errors.As(err, &tc.target), "got %v, want %T", err, tc.target)
		})
	}
}

func TestArrayLiteralEqualsPushSequence(t *testing.T) {
	m := NewMachine()

	ctx1 := m.NewContext(`[ 1 2 3 ]`)
	require.NoError(t, ctx1.Query())
	require.NoError(t, ctx1.TerminalErr())
	lit := ctx1.ParameterStack()
	require.Len(t, lit, 1)

	ctx2 := m.NewContext(`[] 1 push 2 push 3 push`)
	require.NoError(t, ctx2.Query())
	require.NoError(t, ctx2.TerminalErr())
	built := ctx2.ParameterStack()
	require.Len(t, built, 1)

	require.Equal(t, lit[0].Arr.Items, built[0].Arr.Items)
}

func TestEachIteratesOverClone(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`
		var: a [ 1 2 3 ] a !
		var: n 0 n !
		: poke  a @ each  n @ 1 + n !  a @ 99 push drop  endeach ;
		poke
		n @
	`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, Number(3).StrictEqual(got[0]), "loop ran over a live-growing array: got n=%v", got[0])
}

func TestQuitTruncatesReturnStack(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`: inner quit 999 ; : outer 1 inner 2 ; outer 3`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	want := []Value{Number(1), Number(3)}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.True(t, w.StrictEqual(got[i]))
	}
}
