// SPDX-License-Identifier: EPL-2.0

package control

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// OpKind identifies a recorded transport operation.
type OpKind int

const (
	OpEnum OpKind = iota
	OpInts
	OpBytes
	OpRead
	OpClose
)

func (k OpKind) String() string {
	switch k {
	case OpEnum:
		return "enum"
	case OpInts:
		return "ints"
	case OpBytes:
		return "bytes"
	case OpRead:
		return "read"
	case OpClose:
		return "close"
	default:
		return "unknown"
	}
}

// Op is one recorded operation.
type Op struct {
	Kind  OpKind
	Name  string
	Value string
	Ints  []int
	Data  []byte
	// Size is the buffer length a read was given.
	Size int
}

func (o Op) String() string {
	switch o.Kind {
	case OpEnum:
		return fmt.Sprintf("%-5s %s <- %q", o.Kind, o.Name, o.Value)
	case OpInts:
		return fmt.Sprintf("%-5s %s <- %v", o.Kind, o.Name, o.Ints)
	case OpBytes:
		return fmt.Sprintf("%-5s %s <- %d bytes % x", o.Kind, o.Name, len(o.Data), o.Data)
	case OpRead:
		return fmt.Sprintf("%-5s %s -> %d of %d bytes", o.Kind, o.Name, len(o.Data), o.Size)
	default:
		return o.Kind.String()
	}
}

// Recorder is an in-memory Mixer. It records every operation, serves
// programmed read payloads and can be told to fail on given controls.
type Recorder struct {
	mtx *sync.Mutex

	ops    []Op
	reads  map[string][]byte
	fails  map[string]error
	known  map[string]bool
	closed bool
}

func NewRecorder() *Recorder {
	return &Recorder{
		mtx:   &sync.Mutex{},
		reads: make(map[string][]byte),
		fails: make(map[string]error),
	}
}

// SetRead programs the payload returned by reads of name.
func (r *Recorder) SetRead(name string, data []byte) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.reads[name] = slices.Clone(data)
}

// FailOn makes every operation on name fail with err.
func (r *Recorder) FailOn(name string, err error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.fails[name] = err
}

// Restrict limits the set of existing controls. Operations on other names
// fail with ErrEndpointNotFound.
func (r *Recorder) Restrict(names ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.known = make(map[string]bool, len(names))
	for _, n := range names {
		r.known[n] = true
	}
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.ops)
}

// Names returns the control names touched, in order, excluding Close.
func (r *Recorder) Names() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind != OpClose {
			out = append(out, op.Name)
		}
	}

	return out
}

// Count returns how many operations of kind hit name. An empty name counts
// every operation of that kind.
func (r *Recorder) Count(kind OpKind, name string) int {
	n := 0
	for _, op := range r.Ops() {
		if op.Kind == kind && (name == "" || op.Name == name) {
			n++
		}
	}

	return n
}

func (r *Recorder) Closed() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.closed
}

// Reset clears recorded operations, keeping programmed reads and failures.
func (r *Recorder) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.ops = nil
	r.closed = false
}

func (r *Recorder) String() string {
	var b strings.Builder
	for i, op := range r.Ops() {
		fmt.Fprintf(&b, "%3d %s\n", i+1, op)
	}

	return b.String()
}

func (r *Recorder) check(op, name string) error {
	if r.known != nil && !r.known[name] {
		return NotFound(op, name)
	}

	if err, ok := r.fails[name]; ok {
		return TransportFailure(op, name, err)
	}

	return nil
}

func (r *Recorder) SetEnum(name, value string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.check("set enum", name); err != nil {
		return err
	}

	r.ops = append(r.ops, Op{Kind: OpEnum, Name: name, Value: value})

	return nil
}

func (r *Recorder) SetInts(name string, values []int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.check("set array", name); err != nil {
		return err
	}

	r.ops = append(r.ops, Op{Kind: OpInts, Name: name, Ints: slices.Clone(values)})

	return nil
}

func (r *Recorder) SetBytes(name string, data []byte) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.check("set array", name); err != nil {
		return err
	}

	r.ops = append(r.ops, Op{Kind: OpBytes, Name: name, Data: slices.Clone(data)})

	return nil
}

func (r *Recorder) ReadBytes(name string, dst []byte) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.check("get array", name); err != nil {
		return 0, err
	}

	clear(dst)
	n := copy(dst, r.reads[name])
	r.ops = append(r.ops, Op{Kind: OpRead, Name: name, Data: slices.Clone(dst[:n]), Size: len(dst)})

	return n, nil
}

func (r *Recorder) Close() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.closed = true
	r.ops = append(r.ops, Op{Kind: OpClose})

	return nil
}

// Opener returns a MixerOpener that always hands out r.
func (r *Recorder) Opener() MixerOpener {
	return OpenerFunc(func(uint) (Mixer, error) { return r, nil })
}
