package weft

// DictEntry is a single dictionary word (spec.md §3): a name, a link to the
// previously defined entry, an immediate flag, the primitive that runs when
// the word is entered, and its compiled sequence. A compiled sequence of
// length zero denotes a pure primitive with no threaded body.
type DictEntry struct {
	Name      string
	Previous  *DictEntry
	Immediate bool
	Primitive Primitive
	Compiled  []Value

	// Slot backs var:/const: definitions: the entry's own private storage
	// cell (spec.md §4.7 "the conventional choice: store the value in the
	// entry's own compiled[0]" — here a dedicated field, since Compiled is
	// also used to hold a defined word's threaded body).
	Slot Value
}

// Dictionary is the append-only chain of named entries shared by every
// Context spawned from the same Machine (spec.md §5: "Multiple Contexts
// may coexist; they share the global dictionary and latest pointer but
// nothing else").
type Dictionary struct {
	latest *DictEntry
	core   map[string]Primitive

	definingCore bool
}

// Latest returns the most recently defined named entry.
func (d *Dictionary) Latest() *DictEntry { return d.latest }

// Define creates a new entry with Previous set to the current latest entry.
// If name is non-empty, latest advances to the new entry and, while the
// dictionary is still in its core-word-definition phase, the entry is also
// registered in the stable core-word table (a duplicate core name is
// fatal: it indicates a bug in the engine's own bootstrap, not user error).
// An anonymous (name == "") entry is returned unlinked: it is reachable only
// through references held on stacks (array literals, event handlers).
func (d *Dictionary) Define(name string, prim Primitive, immediate bool) *DictEntry {
	e := &DictEntry{Name: name, Primitive: prim, Immediate: immediate}
	if name == "" {
		return e
	}
	e.Previous = d.latest
	d.latest = e
	if d.definingCore {
		if d.core == nil {
			d.core = make(map[string]Primitive)
		}
		if _, dup := d.core[name]; dup {
			panic("weft: duplicate core word " + name)
		}
		d.core[name] = prim
	}
	return e
}

// Find performs the linear, most-recent-first search spec.md §4.2
// describes: later definitions shadow earlier ones with the same name.
func (d *Dictionary) Find(name string) *DictEntry {
	for e := d.latest; e != nil; e = e.Previous {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// CoreWord looks up a core primitive by name without walking the user
// dictionary, so core words can call each other reliably even after user
// code shadows their names (spec.md §4.2).
func (d *Dictionary) CoreWord(name string) Primitive {
	if d.core == nil {
		return nil
	}
	return d.core[name]
}

// beginCoreDefinitions / endCoreDefinitions bracket the bootstrap phase
// during which Define also registers into the stable core-word table.
func (d *Dictionary) beginCoreDefinitions() { d.definingCore = true }
func (d *Dictionary) endCoreDefinitions()   { d.definingCore = false }
