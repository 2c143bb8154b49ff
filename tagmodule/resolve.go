// SPDX-License-Identifier: EPL-2.0

package tagmodule

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/victorzappi/ar-audioengine/catalog"
	"github.com/victorzappi/ar-audioengine/control"
)

// ReadCapacity is the size of the buffer the table is read into.
const ReadCapacity = 1024

// Resolver looks up module instance ids through a control transport.
type Resolver struct {
	Mixer  control.Mixer
	Logger *log.Logger
}

// Query selects backend as the stream context of frontend and reads the
// tagged module table.
func (r *Resolver) Query(ctx context.Context, frontend, backend string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.Mixer.SetEnum(control.Endpoint(frontend, control.Control), backend); err != nil {
		return nil, fmt.Errorf("selecting stream context %s: %w", backend, err)
	}

	buf := make([]byte, ReadCapacity)
	name := control.Endpoint(frontend, control.GetTaggedInfo)
	if _, err := r.Mixer.ReadBytes(name, buf); err != nil {
		return nil, fmt.Errorf("reading tagged module info: %w", err)
	}

	t, err := Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return t, nil
}

// Resolve returns the instance id of the module carrying tag. When the tag
// appears more than once, the first entry with modules wins.
func (r *Resolver) Resolve(ctx context.Context, frontend, backend string, tag uint32) (uint32, error) {
	logger := r.logger()
	logger.Debug("resolving module", "tag", fmt.Sprintf("0x%X", tag), "name", catalog.Tags.NameOf(tag))

	t, err := r.Query(ctx, frontend, backend)
	if err != nil {
		return 0, err
	}

	for i, e := range t.Entries {
		logger.Debug("tag entry", "index", i, "tag", fmt.Sprintf("0x%X", e.Tag),
			"name", catalog.Tags.NameOf(e.Tag), "modules", len(e.Modules))
	}

	miid, ok := t.Lookup(tag)
	if !ok {
		return 0, fmt.Errorf("%w: 0x%X (%s)", ErrTagNotFound, tag, catalog.Tags.NameOf(tag))
	}

	logger.Debug("module resolved", "tag", catalog.Tags.NameOf(tag), "miid", fmt.Sprintf("0x%X", miid))

	return miid, nil
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return log.New(io.Discard)
}
