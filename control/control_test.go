// SPDX-License-Identifier: EPL-2.0

package control

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PCM100 metadata", Endpoint("PCM100", Metadata))
	assert.Equal(t, "CODEC_DMA-LPAIF_WSA-RX-0 rate ch fmt", Endpoint("CODEC_DMA-LPAIF_WSA-RX-0", MediaConfig))
	assert.Equal(t, "PCM7", FrontendName(7))
}

func TestRecorder_RecordsInOrder(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	require.NoError(t, r.SetEnum("PCM100 control", "ZERO"))
	require.NoError(t, r.SetBytes("PCM100 metadata", []byte{1, 2}))
	require.NoError(t, r.SetInts("BE rate ch fmt", []int{48000, 2, 2, 1}))
	require.NoError(t, r.Close())

	ops := r.Ops()
	require.Len(t, ops, 4)
	assert.Equal(t, OpEnum, ops[0].Kind)
	assert.Equal(t, "ZERO", ops[0].Value)
	assert.Equal(t, []byte{1, 2}, ops[1].Data)
	assert.Equal(t, []int{48000, 2, 2, 1}, ops[2].Ints)
	assert.Equal(t, OpClose, ops[3].Kind)
	assert.True(t, r.Closed())
	assert.Equal(t, []string{"PCM100 control", "PCM100 metadata", "BE rate ch fmt"}, r.Names())
}

func TestRecorder_ReadServesProgrammedPayload(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.SetRead("PCM100 getTaggedInfo", []byte{9, 8, 7})

	dst := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	n, err := r.ReadBytes("PCM100 getTaggedInfo", dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{9, 8, 7, 0, 0}, dst)

	op := r.Ops()[0]
	assert.Equal(t, []byte{9, 8, 7}, op.Data)
	assert.Equal(t, 5, op.Size)
	assert.Equal(t, "read  PCM100 getTaggedInfo -> 3 of 5 bytes", op.String())
}

func TestRecorder_Failures(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.FailOn("PCM100 connect", io.ErrUnexpectedEOF)

	err := r.SetEnum("PCM100 connect", "BE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var ee *EndpointError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "PCM100 connect", ee.Name)
	assert.Zero(t, r.Count(OpEnum, ""))
}

func TestRecorder_Restrict(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Restrict("PCM100 metadata")

	assert.NoError(t, r.SetBytes("PCM100 metadata", nil))
	assert.ErrorIs(t, r.SetBytes("PCM101 metadata", nil), ErrEndpointNotFound)

	_, err := r.ReadBytes("PCM100 getTaggedInfo", make([]byte, 4))
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestTransportFailure_NilCause(t *testing.T) {
	t.Parallel()

	err := TransportFailure("set enum", "x", nil)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), `"x"`)
}
