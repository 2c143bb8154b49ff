// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Unknown is returned by name lookups that miss.
const Unknown = "UNKNOWN"

const (
	categoryMask = 0xFF000000
	instanceMask = 0xFFFFF000
)

// Entry is one routing identifier.
type Entry struct {
	Key  uint32
	Name string
}

// Table is a fixed list of routing identifiers sharing a key space.
type Table struct {
	name    string
	entries []Entry
}

// Name reports the table's category name (e.g. "stream").
func (t Table) Name() string { return t.name }

// Entries returns a copy of the table rows in declaration order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)

	return out
}

// Lookup returns the name registered for key.
func (t Table) Lookup(key uint32) (string, bool) {
	for _, e := range t.entries {
		if e.Key == key {
			return e.Name, true
		}
	}

	return "", false
}

// KeyOf returns the key registered under name. Names are case sensitive.
func (t Table) KeyOf(name string) (uint32, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e.Key, true
		}
	}

	return 0, false
}

// NameOf is Lookup with Unknown on a miss.
func (t Table) NameOf(key uint32) string {
	if n, ok := t.Lookup(key); ok {
		return n
	}

	return Unknown
}

// Categories returns every table in a stable order.
func Categories() []Table {
	return []Table{KeyIDs, Streams, Devices, Instances, DevicePPs, StreamPPs, Tags}
}

// Category finds a table by its category name.
func Category(name string) (Table, bool) {
	for _, t := range Categories() {
		if t.name == name {
			return t, true
		}
	}

	return Table{}, false
}

// KeyToName names any key or value. Key ids are checked first, then the top
// byte selects the value table, then small values are treated as instances.
func KeyToName(key uint32) string {
	if n, ok := KeyIDs.Lookup(key); ok {
		return n
	}

	switch key & categoryMask {
	case KeyStreamRX:
		return Streams.NameOf(key)
	case KeyDeviceRX:
		return Devices.NameOf(key)
	case KeyDevicePPRX:
		return DevicePPs.NameOf(key)
	case KeyStreamPPRX:
		return StreamPPs.NameOf(key)
	case 0xC0000000:
		return Tags.NameOf(key)
	}

	if key&instanceMask == 0 {
		return Instances.NameOf(key & 0x00FFFFFF)
	}

	return Unknown
}

// NameToKey searches every table for name.
func NameToKey(name string) (uint32, bool) {
	for _, t := range Categories() {
		if k, ok := t.KeyOf(name); ok {
			return k, true
		}
	}

	return 0, false
}

// ParseValue accepts a number (decimal, or hex with 0x) or a name from t.
func ParseValue(t Table, s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyValue
	}

	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return uint32(v), nil
	}

	if k, ok := t.KeyOf(s); ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: %q is not a number or a %s name", ErrUnknownName, s, t.name)
}
