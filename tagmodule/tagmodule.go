// SPDX-License-Identifier: EPL-2.0

// Package tagmodule decodes the tagged module table a graph reports and
// resolves module instance ids from tags.
//
// Table layout (little-endian, entries packed back to back):
//
//	u32 num_tags
//	num_tags x { u32 tag_id, u32 num_modules, num_modules x { u32 module_id, u32 module_iid } }
package tagmodule

import (
	"encoding/binary"
	"fmt"
)

const (
	countSize       = 4
	entryHeaderSize = 8
	moduleEntrySize = 8
)

// Module identifies one module instance.
type Module struct {
	ID         uint32
	InstanceID uint32
}

// Entry maps a tag to the modules carrying it.
type Entry struct {
	Tag     uint32
	Modules []Module
}

// Table is a decoded tagged module table.
type Table struct {
	Entries []Entry
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) u32(what string) (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, fmt.Errorf("%w: %s at offset %d, table is %d bytes", ErrTruncated, what, r.off, len(r.buf))
	}

	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4

	return v, nil
}

// Decode parses buf. Bytes after the last entry are ignored.
func Decode(buf []byte) (*Table, error) {
	r := &reader{buf: buf}

	numTags, err := r.u32("tag count")
	if err != nil {
		return nil, err
	}

	// every entry needs at least its header
	if maxTags := (len(buf) - countSize) / entryHeaderSize; uint64(numTags) > uint64(maxTags) {
		return nil, fmt.Errorf("%w: %d tags cannot fit in %d bytes", ErrTruncated, numTags, len(buf))
	}

	t := &Table{Entries: make([]Entry, 0, numTags)}
	for i := range int(numTags) {
		tag, err := r.u32("tag id")
		if err != nil {
			return nil, err
		}

		numModules, err := r.u32("module count")
		if err != nil {
			return nil, err
		}

		if rest := len(buf) - r.off; uint64(numModules) > uint64(rest/moduleEntrySize) {
			return nil, fmt.Errorf("%w: entry %d declares %d modules, %d bytes left", ErrTruncated, i, numModules, rest)
		}

		e := Entry{Tag: tag, Modules: make([]Module, numModules)}
		for m := range e.Modules {
			e.Modules[m].ID, _ = r.u32("module id")
			e.Modules[m].InstanceID, _ = r.u32("module instance id")
		}

		t.Entries = append(t.Entries, e)
	}

	return t, nil
}

// Lookup returns the instance id of the first module of the first entry
// matching tag that has at least one module.
func (t *Table) Lookup(tag uint32) (uint32, bool) {
	for _, e := range t.Entries {
		if e.Tag == tag && len(e.Modules) > 0 {
			return e.Modules[0].InstanceID, true
		}
	}

	return 0, false
}

// Encode serializes t in the wire layout. It mirrors Decode and is used
// to program fake transports.
func (t *Table) Encode() []byte {
	size := countSize
	for _, e := range t.Entries {
		size += entryHeaderSize + moduleEntrySize*len(e.Modules)
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Entries)))
	for _, e := range t.Entries {
		buf = binary.LittleEndian.AppendUint32(buf, e.Tag)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Modules)))
		for _, m := range e.Modules {
			buf = binary.LittleEndian.AppendUint32(buf, m.ID)
			buf = binary.LittleEndian.AppendUint32(buf, m.InstanceID)
		}
	}

	return buf
}
