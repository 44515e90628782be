package ot

import (
	"fmt"
	"slices"
	"sync"
)

// TableFactory creates a table for tag over the bytes b. Factories must not
// copy b: tables are views onto the font's bytes.
type TableFactory func(tag Tag, b []byte) (Table, error)

// tableTypes is the process-wide registry of table factories. Entries are
// only ever added.
var tableTypes = struct {
	sync.RWMutex
	factories map[Tag]TableFactory
}{
	factories: make(map[Tag]TableFactory),
}

// RegisterTableType registers a factory for tables with a given tag.
// Registration is meant to be done once at startup, usually from an init
// function. Registering a tag twice is a programming error and panics.
func RegisterTableType(tag Tag, factory TableFactory) {
	if factory == nil {
		panic(fmt.Sprintf("table type %s: factory is nil", tag))
	}
	tableTypes.Lock()
	defer tableTypes.Unlock()
	if _, dup := tableTypes.factories[tag]; dup {
		panic(fmt.Sprintf("table type %s registered twice", tag))
	}
	tableTypes.factories[tag] = factory
}

// RegisteredTableTypes returns the tags with a registered factory, sorted.
func RegisteredTableTypes() []Tag {
	tableTypes.RLock()
	defer tableTypes.RUnlock()
	tags := make([]Tag, 0, len(tableTypes.factories))
	for tag := range tableTypes.factories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// materialize creates a table for tag over b. Tags without a registered
// factory result in a RawTable.
func materialize(tag Tag, b []byte) (Table, error) {
	tableTypes.RLock()
	factory, ok := tableTypes.factories[tag]
	tableTypes.RUnlock()
	if !ok {
		tracer().Debugf("no table type registered for %s, using raw table", tag)
		return NewRawTable(tag, b), nil
	}
	return factory(tag, b)
}

func init() {
	assertEqualInt("head size", headLayout.Size(), 54)
	assertEqualInt("maxp 1.0 size", maxpLayout10.Size(), 32)
	assertEqualInt("hhea size", hheaLayout.Size(), 36)
	assertEqualInt("vhea size", vheaLayout.Size(), 36)
	assertEqualInt("post header size", postLayout.Size(), 32)
	assertEqualInt("cmap12 header size", cmap12HeaderLayout.Size(), 16)
	RegisterTableType(T("head"), newHeadTable)
	RegisterTableType(T("maxp"), newMaxPTable)
	RegisterTableType(T("hhea"), newHHeaTable)
	RegisterTableType(T("vhea"), newVHeaTable)
	RegisterTableType(T("hmtx"), newHMtxTable)
	RegisterTableType(T("vmtx"), newVMtxTable)
	RegisterTableType(T("loca"), newLocaTable)
	RegisterTableType(T("glyf"), newGlyfTable)
	RegisterTableType(T("cmap"), newCMapTable)
	RegisterTableType(T("post"), newPostTable)
	RegisterTableType(T("name"), newNameTable)
}
