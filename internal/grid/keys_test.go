package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrder(t *testing.T) {
	keys := []string{"A", "B", "C", "D"}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"empty order uses descriptor order", nil, []string{"A", "B", "C", "D"}},
		{"unknown keys dropped", []string{"X", "C", "A"}, []string{"C", "A", "B", "D"}},
		{"duplicates dropped", []string{"B", "B", "A"}, []string{"B", "A", "C", "D"}},
		{"complete order kept", []string{"D", "C", "B", "A"}, []string{"D", "C", "B", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOrder(tt.order, keys)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsPermutation(got, keys))
		})
	}
}

func TestSubsequence(t *testing.T) {
	order := []string{"C", "A", "B"}
	assert.Equal(t, []string{"C", "B"}, Subsequence(order, []string{"B", "Z", "C"}))
	assert.Empty(t, Subsequence(order, nil))
	assert.True(t, IsSubsequence([]string{"C", "B"}, order))
	assert.False(t, IsSubsequence([]string{"B", "C"}, order))
}

func TestKeys_SkipsEmptyAndDuplicates(t *testing.T) {
	cols := []Column{{Key: "a"}, {Key: ""}, {Key: "b"}, {Key: "a", Title: "again"}}
	assert.Equal(t, []string{"a", "b"}, Keys(cols))
}
