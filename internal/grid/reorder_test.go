package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorder(t *testing.T) {
	base := []string{"A", "B", "C", "action"}

	tests := []struct {
		name string
		ev   DropEvent
		want []string
	}{
		{"drop outside list", DropEvent{Source: "A"}, base},
		{"drop on itself", DropEvent{Source: "B", Target: "B"}, base},
		{"unknown source", DropEvent{Source: "Z", Target: "B"}, base},
		{"unknown target", DropEvent{Source: "A", Target: "Z"}, base},
		{"move forward", DropEvent{Source: "A", Target: "B"}, []string{"B", "A", "C", "action"}},
		{"move to end", DropEvent{Source: "A", Target: "action"}, []string{"B", "C", "action", "A"}},
		{"move backward", DropEvent{Source: "C", Target: "A"}, []string{"C", "A", "B", "action"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reorder(base, tt.ev)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsPermutation(got, base))
		})
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	base := []string{"A", "B", "C"}
	_ = Reorder(base, DropEvent{Source: "A", Target: "C"})
	assert.Equal(t, []string{"A", "B", "C"}, base)
}

func TestReorder_DragAndBackRestores(t *testing.T) {
	base := []string{"A", "B", "C", "D", "E"}
	for _, src := range base {
		for _, dst := range base {
			moved := Reorder(base, DropEvent{Source: src, Target: dst})
			// The key that used to sit at src's old index is the drop target
			// that puts src back.
			back := moved[indexOf(base, src)]
			if back == src {
				assert.Equal(t, base, moved)
				continue
			}
			restored := Reorder(moved, DropEvent{Source: src, Target: back})
			assert.Equal(t, base, restored, "drag %s onto %s and back", src, dst)
		}
	}
}

func TestPinLast(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "action"}, PinLast([]string{"A", "action", "B"}, "action"))
	assert.Equal(t, []string{"A", "action"}, PinLast([]string{"A", "action"}, "action"))
	assert.Equal(t, []string{"A", "B"}, PinLast([]string{"A", "B"}, "action"))
}
