package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopPeek(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")

	ctx.Push(Number(1))
	ctx.Push(Number(2))

	peeked, err := ctx.Peek()
	require.NoError(t, err)
	assert.True(t, Number(2).StrictEqual(peeked))

	got, err := ctx.Pop()
	require.NoError(t, err)
	assert.True(t, Number(2).StrictEqual(got))

	got, err = ctx.Pop()
	require.NoError(t, err)
	assert.True(t, Number(1).StrictEqual(got))

	_, err = ctx.Pop()
	var sue StackUnderflowError
	require.ErrorAs(t, err, &sue)
	assert.Equal(t, "parameter", sue.Stack)

	_, err = ctx.Peek()
	require.ErrorAs(t, err, &sue)
}

func TestPopCompilationTargetUnderflow(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")

	_, err := ctx.popCompilationTarget(";")
	var cue CompilationStackUnderflowError
	require.ErrorAs(t, err, &cue)
	assert.Equal(t, ";", cue.Word)
}

func TestSeedReturnDrivesQueryWithoutSourceTokens(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`: greet 'hi' ;`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	entry := m.FindDictionaryEntry("greet")
	require.NotNil(t, entry)

	ctx2 := m.NewContext("")
	ctx2.SeedReturn(entry)
	require.NoError(t, ctx2.Query())
	require.NoError(t, ctx2.TerminalErr())

	got := ctx2.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, String("hi").StrictEqual(got[0]))
}

func TestResetAllowsSecondQueryAfterExternalHalt(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`1 2 +`)
	ctx.Halt(nil)
	assert.True(t, ctx.Halted())

	ctx.Reset()
	assert.False(t, ctx.Halted())
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, Number(3).StrictEqual(got[0]))
}

func TestMeRoundTrip(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")
	assert.Nil(t, ctx.Me())

	sentinel := struct{ tag string }{tag: "handler"}
	ctx.SetMe(sentinel)
	assert.Equal(t, sentinel, ctx.Me())
}
