package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootWordsAreDefinedWithExpectedImmediacy(t *testing.T) {
	m := NewMachine()
	for _, name := range bootWordNames {
		e := m.FindDictionaryEntry(name)
		require.NotNilf(t, e, "boot word %q must be defined after NewMachine", name)
		// ahead and <back are plain helpers; every other boot word is immediate.
		wantImmediate := name != "ahead" && name != "<back"
		assert.Equalf(t, wantImmediate, e.Immediate, "boot word %q immediacy", name)
	}
}

func TestBootAgainWithConditionalExit(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`
		var: n 0 n !
		: countup
			begin
				n @ 1 + dup n !
				10 ==
			if
				exit
			endif
			again
		;
		countup
		n @
	`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, Number(10).StrictEqual(got[0]))
}

func TestBootIfElseBothBranches(t *testing.T) {
	m := NewMachine()

	ctxTrue := m.NewContext(`: pick  if 1 else 2 endif ; true pick`)
	require.NoError(t, ctxTrue.Query())
	require.NoError(t, ctxTrue.TerminalErr())
	gotTrue := ctxTrue.ParameterStack()
	require.Len(t, gotTrue, 1)
	assert.True(t, Number(1).StrictEqual(gotTrue[0]))

	ctxFalse := m.NewContext(`: pick  if 1 else 2 endif ; false pick`)
	require.NoError(t, ctxFalse.Query())
	require.NoError(t, ctxFalse.TerminalErr())
	gotFalse := ctxFalse.ParameterStack()
	require.Len(t, gotFalse, 1)
	assert.True(t, Number(2).StrictEqual(gotFalse[0]))
}
