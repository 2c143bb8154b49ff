// SPDX-License-Identifier: EPL-2.0

package tagmodule

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorzappi/ar-audioengine/control"
)

func words(vs ...uint32) []byte {
	buf := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}

	return buf
}

func TestDecode_PackedEntries(t *testing.T) {
	t.Parallel()

	buf := words(
		3,
		0x10, 1, 0xAA, 0x1234,
		0x20, 2, 0xBB, 0x5678, 0xCC, 0x9ABC,
		0x30, 0,
	)

	tbl, err := Decode(buf)
	require.NoError(t, err)
	require.Len(t, tbl.Entries, 3)

	assert.Equal(t, Entry{Tag: 0x10, Modules: []Module{{0xAA, 0x1234}}}, tbl.Entries[0])
	assert.Equal(t, []Module{{0xBB, 0x5678}, {0xCC, 0x9ABC}}, tbl.Entries[1].Modules)
	assert.Empty(t, tbl.Entries[2].Modules)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tbl, err := Decode(words(2, 0x10, 1, 0xAA, 0x1234, 0x20, 1, 0xBB, 0x4321))
	require.NoError(t, err)

	miid, ok := tbl.Lookup(0x10)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x1234), miid)

	_, ok = tbl.Lookup(0x30)
	assert.False(t, ok)
}

func TestLookup_FirstMatchWins(t *testing.T) {
	t.Parallel()

	tbl := &Table{Entries: []Entry{
		{Tag: 0x10},
		{Tag: 0x10, Modules: []Module{{1, 0x111}, {2, 0x222}}},
		{Tag: 0x10, Modules: []Module{{3, 0x333}}},
	}}

	miid, ok := tbl.Lookup(0x10)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x111), miid)
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"short count", []byte{1, 0}},
		{"too many tags", words(200, 0x10, 0)},
		{"module list past end", words(1, 0x10, 3, 0xAA, 0x1)},
		{"second header missing", words(2, 0x10, 1, 0xAA, 0x1, 0x20)},
		{"huge module count", words(1, 0x10, 0xFFFFFFFF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(tt.buf)
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestDecode_ZeroTagsInFullBuffer(t *testing.T) {
	t.Parallel()

	tbl, err := Decode(make([]byte, ReadCapacity))
	require.NoError(t, err)
	assert.Empty(t, tbl.Entries)
}

func TestEncode_MirrorsDecode(t *testing.T) {
	t.Parallel()

	in := &Table{Entries: []Entry{
		{Tag: 0xC0000019, Modules: []Module{{0x07001015, 0x4010}}},
		{Tag: 0xC0000004, Modules: []Module{{0x07001000, 0x4020}}},
	}}

	out, err := Decode(in.Encode())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	rec := control.NewRecorder()
	rec.SetRead("PCM100 getTaggedInfo", words(2, 0x10, 1, 0xAA, 0x1234, 0x20, 1, 0xBB, 0x99))

	r := &Resolver{Mixer: rec}
	miid, err := r.Resolve(context.Background(), "PCM100", "BE0", 0x10)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1234), miid)

	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, control.Op{Kind: control.OpEnum, Name: "PCM100 control", Value: "BE0"}, ops[0])
	assert.Equal(t, "PCM100 getTaggedInfo", ops[1].Name)
	assert.Equal(t, control.OpRead, ops[1].Kind)
	assert.Equal(t, ReadCapacity, ops[1].Size)
	assert.Len(t, ops[1].Data, 36)

	_, err = r.Resolve(context.Background(), "PCM100", "BE0", 0x30)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestResolver_TransportError(t *testing.T) {
	t.Parallel()

	rec := control.NewRecorder()
	rec.FailOn("PCM100 getTaggedInfo", errors.New("ioctl failed"))

	r := &Resolver{Mixer: rec}
	_, err := r.Resolve(context.Background(), "PCM100", "BE0", 0x10)
	assert.ErrorIs(t, err, control.ErrTransport)
	assert.NotErrorIs(t, err, ErrTagNotFound)
}

func TestResolver_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := control.NewRecorder()
	_, err := (&Resolver{Mixer: rec}).Resolve(ctx, "PCM100", "BE0", 0x10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Ops())
}
