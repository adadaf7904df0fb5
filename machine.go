package weft

import (
	"github.com/weft-lang/weft/hostbridge"
)

// Machine owns everything that spec.md §5 says is shared across Contexts:
// the dictionary and its `latest` pointer. Each Machine bootstraps the core
// word set and the §4.6 boot source exactly once; every Context spawned
// from it sees the same dictionary, including words user code defines at
// runtime (spec.md §5: "define invoked from within a handler mutates shared
// global state; this is the documented model").
type Machine struct {
	dict   Dictionary
	bridge hostbridge.Bridge
	logfn  func(mark, mess string, args ...interface{})
}

// MachineOption configures a Machine at construction time.
type MachineOption interface{ applyMachine(m *Machine) }

type machineOptionFunc func(m *Machine)

func (f machineOptionFunc) applyMachine(m *Machine) { f(m) }

// WithHostBridge installs the trait implementing spec.md §4.10's dynamic
// property/apply/construct hooks. Without it, Null fails closed.
func WithHostBridge(b hostbridge.Bridge) MachineOption {
	return machineOptionFunc(func(m *Machine) { m.bridge = b })
}

// WithMachineLogf installs a step/definition tracer shared by every Context
// spawned from this Machine, mirroring the teacher's VM.logfn.
func WithMachineLogf(logfn func(mark, mess string, args ...interface{})) MachineOption {
	return machineOptionFunc(func(m *Machine) { m.logfn = logfn })
}

// NewMachine registers the core word set (C7) and evaluates the bootstrap
// source (C8) once, producing a Machine ready to spawn Contexts from.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{bridge: hostbridge.Null}
	for _, opt := range opts {
		opt.applyMachine(m)
	}

	m.dict.beginCoreDefinitions()
	registerCorePrimitives(m)
	m.dict.endCoreDefinitions()

	boot := m.NewContext(bootSource)
	boot.executeAtEnd = true
	if err := boot.Query(); err != nil {
		panic("weft: boot source failed to compile: " + err.Error())
	}
	return m
}

// Define registers a new primitive word into the shared dictionary,
// spec.md §6's `define({name?, impl, immediate?})` embedding entry point.
func (m *Machine) Define(name string, prim Primitive, immediate bool) *DictEntry {
	return m.dict.Define(name, prim, immediate)
}

// FindDictionaryEntry looks up a word by name, spec.md §6's
// `find_dictionary_entry`.
func (m *Machine) FindDictionaryEntry(name string) *DictEntry {
	return m.dict.Find(name)
}

// CoreWordImpl returns a stable handle to a builtin primitive by name,
// spec.md §6's `core_word_impl`.
func (m *Machine) CoreWordImpl(name string) Primitive {
	return m.dict.CoreWord(name)
}
