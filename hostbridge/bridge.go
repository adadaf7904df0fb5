// Package hostbridge defines the seam between the engine and a host
// environment, per spec.md §1 "Out of scope" and §4.10: dynamic property
// access, host-function apply, host-global access, and host-object
// construction are thin reflective hooks the core only ever calls through
// this interface. No DOM, browser, or JS runtime is implemented here — a
// real embedding (the "DOM/event collaborator" of spec.md §6) supplies its
// own Bridge.
package hostbridge

import "fmt"

// Bridge is the trait an embedding host implements to answer the engine's
// dynamic property/apply/construct requests (spec.md §4.10, §9).
type Bridge interface {
	// Get reads a dynamic property off an opaque host object.
	Get(obj interface{}, name string) (interface{}, error)
	// Set writes a dynamic property on an opaque host object.
	Set(obj interface{}, name string, val interface{}) error
	// Apply invokes a host function value with the given arguments.
	Apply(fn interface{}, args []interface{}) (interface{}, error)
	// New constructs a fresh host object (the `{}` word).
	New() (interface{}, error)
}

// Null is the default Bridge: every operation fails closed with
// ErrNoBridge, so a core running without an embedding host gets a clear
// error instead of a nil-pointer panic.
var Null Bridge = nullBridge{}

// ErrNoBridge is returned by Null for every operation.
var ErrNoBridge = fmt.Errorf("hostbridge: no bridge configured")

type nullBridge struct{}

func (nullBridge) Get(interface{}, string) (interface{}, error)            { return nil, ErrNoBridge }
func (nullBridge) Set(interface{}, string, interface{}) error              { return ErrNoBridge }
func (nullBridge) Apply(interface{}, []interface{}) (interface{}, error)   { return nil, ErrNoBridge }
func (nullBridge) New() (interface{}, error)                               { return nil, ErrNoBridge }
