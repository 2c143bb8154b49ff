// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aifc", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := Registry().Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}
