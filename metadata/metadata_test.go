// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/victorzappi/ar-audioengine/catalog"
)

func TestNewGraphSpec_DropsZeroValuesInOrder(t *testing.T) {
	t.Parallel()

	g, err := NewGraphSpec(
		KeyValue{catalog.KeyStreamRX, catalog.StreamPCMLowLatencyPlayback},
		KeyValue{catalog.KeyInstance, catalog.Instance1},
		KeyValue{catalog.KeyStreamPPRX, 0},
		KeyValue{catalog.KeyDevicePPRX, catalog.DevicePPAudioMBDRC},
		KeyValue{catalog.KeyDeviceRX, catalog.DeviceSpeaker},
	)
	if err != nil {
		t.Fatalf("NewGraphSpec() error = %v", err)
	}

	want := []uint32{catalog.KeyStreamRX, catalog.KeyInstance, catalog.KeyDevicePPRX, catalog.KeyDeviceRX}
	got := g.Pairs()
	if len(got) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(got), len(want))
	}

	for i, kv := range got {
		if kv.Key != want[i] {
			t.Errorf("pair %d key = 0x%X, want 0x%X", i, kv.Key, want[i])
		}
	}
}

func TestNewGraphSpec_AllZeroIsRejected(t *testing.T) {
	t.Parallel()

	_, err := NewGraphSpec(KeyValue{catalog.KeyStreamRX, 0}, KeyValue{catalog.KeyDeviceRX, 0})
	if !errors.Is(err, ErrEmptyGraph) {
		t.Fatalf("error = %v, want ErrEmptyGraph", err)
	}

	if _, err := NewGraphSpec(); !errors.Is(err, ErrEmptyGraph) {
		t.Fatalf("no entries: error = %v, want ErrEmptyGraph", err)
	}
}

func TestEncode_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		graph []KeyValue
		calib CalibrationSet
		props []PropertyRecord
	}{
		{"graph only", []KeyValue{{1, 2}}, nil, nil},
		{"graph and calibration", []KeyValue{{1, 2}, {3, 4}}, CalibrationSet{{5, 6}}, nil},
		{"with properties", []KeyValue{{1, 2}}, CalibrationSet{{5, 6}, {7, 8}},
			[]PropertyRecord{{ID: 9, Values: []uint32{1, 2, 3}}, {ID: 10}}},
		{"all empty", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := 8 + 8*len(tt.graph) + 8*len(tt.calib)
			for _, p := range tt.props {
				want += 8 + 4*len(p.Values)
			}

			blob := Encode(tt.graph, tt.calib, tt.props)
			if len(blob) != want {
				t.Errorf("len(Encode()) = %d, want %d", len(blob), want)
			}

			if Size(tt.graph, tt.calib, tt.props) != want {
				t.Errorf("Size() = %d, want %d", Size(tt.graph, tt.calib, tt.props), want)
			}
		})
	}
}

func TestEncode_Layout(t *testing.T) {
	t.Parallel()

	blob := Encode(
		[]KeyValue{{0xA1000000, 0xA100000E}, {0xA2000000, 0xA2000001}},
		CalibrationSet{{0xA4000000, 7}},
		[]PropertyRecord{{ID: 0x42, Values: []uint32{0xDEADBEEF}}},
	)

	words := make([]uint32, len(blob)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(blob[i*4:])
	}

	want := []uint32{
		2, 0xA1000000, 0xA100000E, 0xA2000000, 0xA2000001,
		1, 0xA4000000, 7,
		0x42, 1, 0xDEADBEEF,
	}

	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}

	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = 0x%X, want 0x%X", i, words[i], want[i])
		}
	}
}

func TestEncodeGraph_Empty(t *testing.T) {
	t.Parallel()

	if _, err := EncodeGraph(GraphSpec{}); !errors.Is(err, ErrEmptyGraph) {
		t.Fatalf("EncodeGraph(zero) error = %v, want ErrEmptyGraph", err)
	}
}

func TestKeyValue_String(t *testing.T) {
	t.Parallel()

	kv := KeyValue{catalog.KeyDeviceRX, catalog.DeviceSpeaker}
	if got := kv.String(); got != "DEVICERX=SPEAKER" {
		t.Errorf("String() = %q", got)
	}
}
