// SPDX-License-Identifier: EPL-2.0

// Package metadata encodes graph-identity metadata blobs.
//
// A blob is little-endian and laid out as
//
//	u32 graph count | graph pairs | u32 calibration count | calibration pairs | property records
//
// with 8 bytes per pair and no padding anywhere.
package metadata

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/victorzappi/ar-audioengine/catalog"
)

const (
	kvSize         = 8
	countSize      = 4
	propHeaderSize = 8
)

// KeyValue is one routing attribute.
type KeyValue struct {
	Key   uint32
	Value uint32
}

func (kv KeyValue) String() string {
	return fmt.Sprintf("%s=%s", catalog.KeyToName(kv.Key), catalog.KeyToName(kv.Value))
}

// GraphSpec is an ordered, non-empty list of routing attributes with
// non-zero values. Order is significant to the hardware.
type GraphSpec struct {
	kvs []KeyValue
}

// NewGraphSpec keeps the non-zero entries of kvs in order.
func NewGraphSpec(kvs ...KeyValue) (GraphSpec, error) {
	out := make([]KeyValue, 0, len(kvs))
	for _, kv := range kvs {
		if kv.Value != 0 {
			out = append(out, kv)
		}
	}

	if len(out) == 0 {
		return GraphSpec{}, ErrEmptyGraph
	}

	return GraphSpec{kvs: out}, nil
}

// Pairs returns a copy of the entries.
func (g GraphSpec) Pairs() []KeyValue {
	out := make([]KeyValue, len(g.kvs))
	copy(out, g.kvs)

	return out
}

func (g GraphSpec) Len() int { return len(g.kvs) }

// Empty reports whether g is the zero GraphSpec.
func (g GraphSpec) Empty() bool { return len(g.kvs) == 0 }

func (g GraphSpec) String() string {
	parts := make([]string, len(g.kvs))
	for i, kv := range g.kvs {
		parts[i] = kv.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// CalibrationSet holds tuning pairs. It may be empty.
type CalibrationSet []KeyValue

// PropertyRecord is a variable-length property: id, value count, values.
type PropertyRecord struct {
	ID     uint32
	Values []uint32
}

// Size is the encoded length of the record.
func (p PropertyRecord) Size() int {
	return propHeaderSize + 4*len(p.Values)
}

// Size returns the exact length Encode will produce.
func Size(graph []KeyValue, calib CalibrationSet, props []PropertyRecord) int {
	n := 2*countSize + kvSize*len(graph) + kvSize*len(calib)
	for _, p := range props {
		n += p.Size()
	}

	return n
}

// Encode serializes the blob. Keys and values are not interpreted.
func Encode(graph []KeyValue, calib CalibrationSet, props []PropertyRecord) []byte {
	buf := make([]byte, 0, Size(graph, calib, props))

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(graph)))
	buf = appendPairs(buf, graph)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(calib)))
	buf = appendPairs(buf, calib)

	for _, p := range props {
		buf = binary.LittleEndian.AppendUint32(buf, p.ID)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.Values)))
		for _, v := range p.Values {
			buf = binary.LittleEndian.AppendUint32(buf, v)
		}
	}

	return buf
}

// EncodeGraph encodes a full graph with no calibration or properties.
func EncodeGraph(g GraphSpec) ([]byte, error) {
	if g.Empty() {
		return nil, ErrEmptyGraph
	}

	return Encode(g.kvs, nil, nil), nil
}

func appendPairs(buf []byte, kvs []KeyValue) []byte {
	for _, kv := range kvs {
		buf = binary.LittleEndian.AppendUint32(buf, kv.Key)
		buf = binary.LittleEndian.AppendUint32(buf, kv.Value)
	}

	return buf
}
