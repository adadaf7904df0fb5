package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchPrimAlwaysAdvancesByOffset(t *testing.T) {
	ctx := NewMachine().NewContext("")
	entry := &DictEntry{Name: "t", Compiled: []Value{Value{}, Number(2)}}
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}

	require.NoError(t, branchPrim(ctx))
	assert.Equal(t, 2, ctx.returnStack[0].i)
}

func TestBranchPrimRejectsNonNumericOffset(t *testing.T) {
	ctx := NewMachine().NewContext("")
	entry := &DictEntry{Name: "t", Compiled: []Value{Value{}, String("nope")}}
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}

	err := branchPrim(ctx)
	var bbe BadBranchError
	require.ErrorAs(t, err, &bbe)
}

func TestZeroBranchPrimTakesBranchOnlyWhenZero(t *testing.T) {
	entry := &DictEntry{Name: "t", Compiled: []Value{Value{}, Number(3)}}

	ctx := NewMachine().NewContext("")
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}
	ctx.Push(Number(0))
	require.NoError(t, zeroBranchPrim(ctx))
	assert.Equal(t, 3, ctx.returnStack[0].i)

	ctx2 := NewMachine().NewContext("")
	ctx2.returnStack = []retFrame{{dict: entry, i: 0}}
	ctx2.Push(Number(7))
	require.NoError(t, zeroBranchPrim(ctx2))
	assert.Equal(t, 1, ctx2.returnStack[0].i, "non-zero must only step over the offset cell")
}

func TestZeroBranchPrimRejectsNonNumericStack(t *testing.T) {
	entry := &DictEntry{Name: "t", Compiled: []Value{Value{}, Number(3)}}
	ctx := NewMachine().NewContext("")
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}
	ctx.Push(String("nope"))

	err := zeroBranchPrim(ctx)
	var bsze BadStackForZeroBranchError
	require.ErrorAs(t, err, &bsze)
}

func TestFalsyBranchPrimBranchesOnFalsyOfAnyKind(t *testing.T) {
	entry := &DictEntry{Name: "t", Compiled: []Value{Value{}, Number(5)}}

	ctx := NewMachine().NewContext("")
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}
	ctx.Push(String(""))
	require.NoError(t, falsyBranchPrim(ctx))
	assert.Equal(t, 5, ctx.returnStack[0].i)

	ctx2 := NewMachine().NewContext("")
	ctx2.returnStack = []retFrame{{dict: entry, i: 0}}
	ctx2.Push(String("truthy"))
	require.NoError(t, falsyBranchPrim(ctx2))
	assert.Equal(t, 1, ctx2.returnStack[0].i)
}

func TestHerePrimPushesCurrentCompiledLength(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")
	ctx.compile(Number(1))
	ctx.compile(Number(2))

	require.NoError(t, herePrim(ctx))
	got, err := ctx.Pop()
	require.NoError(t, err)
	require.Equal(t, KindCell, got.Kind)
	assert.Equal(t, 2, got.Cell.Index)
	assert.Same(t, ctx.compilationTarget(), got.Cell.Entry)
}

func TestStackFramePrimComputesIndexDelta(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")
	e := ctx.compilationTarget()

	ctx.Push(CellRef(Cell{Entry: e, Index: 5}))
	ctx.Push(CellRef(Cell{Entry: e, Index: 2}))
	require.NoError(t, stackFramePrim(ctx))

	got, err := ctx.Pop()
	require.NoError(t, err)
	assert.True(t, Number(3).StrictEqual(got))
}

func TestStackFramePrimRejectsMismatchedEntries(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext("")
	a := &DictEntry{Name: "a"}
	b := &DictEntry{Name: "b"}

	ctx.Push(CellRef(Cell{Entry: a, Index: 1}))
	ctx.Push(CellRef(Cell{Entry: b, Index: 0}))
	err := stackFramePrim(ctx)
	var bsfe BadStackFrameError
	require.ErrorAs(t, err, &bsfe)
}

func TestFetchInlineCellPushesAndAdvances(t *testing.T) {
	entry := &DictEntry{Name: "t", Compiled: []Value{Value{}, Number(42)}}
	ctx := NewMachine().NewContext("")
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}

	require.NoError(t, fetchInlineCell(ctx))
	got, err := ctx.Pop()
	require.NoError(t, err)
	assert.True(t, Number(42).StrictEqual(got))
	assert.Equal(t, 1, ctx.returnStack[0].i)
}

func TestExitPrimPopsReturnFrame(t *testing.T) {
	entry := &DictEntry{Name: "t", Compiled: []Value{Number(1)}}
	ctx := NewMachine().NewContext("")
	ctx.returnStack = []retFrame{{dict: entry, i: 0}}

	require.NoError(t, exitPrim(ctx))
	assert.Len(t, ctx.returnStack, 0)
}

func TestExitPrimUnderflowsOnEmptyReturnStack(t *testing.T) {
	ctx := NewMachine().NewContext("")
	err := exitPrim(ctx)
	var rsue ReturnStackUnderflowError
	require.ErrorAs(t, err, &rsue)
}
