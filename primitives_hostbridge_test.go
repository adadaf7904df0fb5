package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-lang/weft/hostbridge"
)

type fakeBridge struct{}

func (fakeBridge) Get(obj interface{}, name string) (interface{}, error) {
	m := obj.(map[string]interface{})
	return m[name], nil
}

func (fakeBridge) Set(obj interface{}, name string, val interface{}) error {
	m := obj.(map[string]interface{})
	m[name] = val
	return nil
}

func (fakeBridge) Apply(fn interface{}, args []interface{}) (interface{}, error) {
	f := fn.(func([]interface{}) interface{})
	return f(args), nil
}

func (fakeBridge) New() (interface{}, error) {
	return map[string]interface{}{}, nil
}

func TestHostBridgeGetSetRoundTrip(t *testing.T) {
	m := NewMachine(WithHostBridge(fakeBridge{}))
	ctx := m.NewContext(`{} const: o  5 o .! foo  o . foo`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, Number(5).StrictEqual(got[0]))
}

func TestJSApplyThroughBridge(t *testing.T) {
	m := NewMachine(WithHostBridge(fakeBridge{}))
	add := func(args []interface{}) interface{} {
		return args[0].(float64) + args[1].(float64)
	}
	m.Define("pushFn", func(ctx *Context) error {
		ctx.Push(Object(add))
		return nil
	}, false)

	ctx := m.NewContext(`pushFn 3 4 2 collect jsApply`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, Number(7).StrictEqual(got[0]))
}

func TestJSApplyOnWordToFuncBypassesBridge(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`: double 2 * ; wordToFunc: double  5 1 collect  jsApply`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.True(t, Number(10).StrictEqual(got[0]))
}

func TestHostBridgeNullFailsClosed(t *testing.T) {
	_, err := hostbridge.Null.Get(nil, "anything")
	assert.ErrorIs(t, err, hostbridge.ErrNoBridge)
}

func TestCPushesRunningContext(t *testing.T) {
	m := NewMachine()
	ctx := m.NewContext(`C`)
	require.NoError(t, ctx.Query())
	require.NoError(t, ctx.TerminalErr())

	got := ctx.ParameterStack()
	require.Len(t, got, 1)
	assert.Equal(t, KindObject, got[0].Kind)
	assert.Same(t, ctx, got[0].Obj.(*Context))
}
