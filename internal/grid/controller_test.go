package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct {
	calls   int
	order   []string
	visible []string
}

func (r *changeRecorder) record(order, visible []string) {
	r.calls++
	r.order, r.visible = order, visible
}

func greekColumns() []Column {
	return []Column{
		{Key: "alpha", Title: "Alpha"},
		{Key: "beta", Title: "Beta"},
		{Key: "gamma", Title: "Gamma"},
	}
}

func newFlat(t *testing.T, cols []Column, visible []string, fixed ...string) (*Controller, *changeRecorder) {
	t.Helper()
	rec := &changeRecorder{}
	c := NewController(ControllerConfig{
		Columns:   cols,
		Order:     Keys(cols),
		Visible:   visible,
		Fixed:     fixed,
		ActionKey: DefaultActionKey,
		OnChange:  rec.record,
	})
	return c, rec
}

func TestController_ToggleRoundTrip(t *testing.T) {
	c, rec := newFlat(t, greekColumns(), []string{"alpha", "gamma"})
	before := c.Visible()

	c.Toggle("beta", true)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, c.Visible())
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, c.Order())

	c.Toggle("beta", false)
	assert.Equal(t, before, c.Visible())
	assert.Equal(t, 2, rec.calls)
	assert.Equal(t, before, rec.visible)
}

func TestController_ToggleIgnoresFixedAndUnknown(t *testing.T) {
	c, rec := newFlat(t, greekColumns(), []string{"beta"}, "alpha")

	// Fixed columns are always visible and never toggled.
	assert.Equal(t, []string{"alpha", "beta"}, c.Visible())
	c.Toggle("alpha", false)
	c.Toggle("nope", true)
	c.Toggle("beta", true) // already visible

	assert.Equal(t, 0, rec.calls)
	assert.Equal(t, []string{"alpha", "beta"}, c.Visible())
}

func TestController_OptionsExcludeFixed(t *testing.T) {
	c, _ := newFlat(t, greekColumns(), []string{"beta"}, "alpha")

	opts := c.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, Option{Key: "beta", Title: "Beta", Checked: true}, opts[0])
	assert.Equal(t, Option{Key: "gamma", Title: "Gamma", Checked: false}, opts[1])

	// Fixed columns still appear in the drag list.
	assert.Len(t, c.Sortable(), 3)
}

func TestController_SearchScopesToggleAll(t *testing.T) {
	c, rec := newFlat(t, greekColumns(), []string{"alpha"})

	c.SetSearch("B")
	assert.Equal(t, []string{"beta"}, c.Filtered())
	assert.Equal(t, SelectState{}, c.SelectAll())

	c.ToggleAll(true)
	assert.Equal(t, []string{"alpha", "beta"}, c.Visible())
	assert.Equal(t, SelectState{Checked: true}, c.SelectAll())

	c.ToggleAll(false)
	assert.Equal(t, []string{"alpha"}, c.Visible(), "alpha and gamma keep their membership")
	assert.Equal(t, 2, rec.calls)
}

func TestController_ToggleAllRoundTrip(t *testing.T) {
	cols := []Column{
		{Key: "first_name", Title: "First name"},
		{Key: "last_name", Title: "Last name"},
		{Key: "email", Title: "Email"},
		{Key: "team", Title: "Team"},
	}
	c, _ := newFlat(t, cols, []string{"email", "team"})
	before := c.Visible()

	c.SetSearch("name")
	c.ToggleAll(true)
	assert.Equal(t, []string{"first_name", "last_name", "email", "team"}, c.Visible())
	c.ToggleAll(false)
	assert.Equal(t, before, c.Visible())
}

func TestController_SelectAllStates(t *testing.T) {
	c, _ := newFlat(t, greekColumns(), nil)
	assert.Equal(t, SelectState{}, c.SelectAll())

	c.Toggle("alpha", true)
	assert.Equal(t, SelectState{Indeterminate: true}, c.SelectAll())

	c.ToggleAll(true)
	assert.Equal(t, SelectState{Checked: true}, c.SelectAll())

	c.SetSearch("zzz")
	assert.Equal(t, SelectState{}, c.SelectAll(), "empty filter is neither checked nor indeterminate")
}

func TestController_DragEnd(t *testing.T) {
	cols := []Column{{Key: "A"}, {Key: "B"}, {Key: "C"}, {Key: DefaultActionKey}}
	c, rec := newFlat(t, cols, []string{"A", "C"})

	c.DragEnd(DropEvent{Source: "A", Target: "B"})
	assert.Equal(t, []string{"B", "A", "C", DefaultActionKey}, c.Order())
	assert.Equal(t, []string{"A", "C", DefaultActionKey}, c.Visible())
	assert.Equal(t, 1, rec.calls)

	c.DragEnd(DropEvent{Source: "A"})
	c.DragEnd(DropEvent{Source: "A", Target: "A"})
	assert.Equal(t, 1, rec.calls, "no-op drops do not commit")
}

func TestController_DragIgnoresSearch(t *testing.T) {
	c, _ := newFlat(t, greekColumns(), []string{"alpha", "beta", "gamma"})
	c.SetSearch("mm")
	require.Equal(t, []string{"gamma"}, c.Filtered())

	c.DragEnd(DropEvent{Source: "gamma", Target: "alpha"})
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, c.Order())
}

func TestController_ActionKeyStaysLast(t *testing.T) {
	cols := []Column{{Key: DefaultActionKey, Title: "Action"}, {Key: "A", Title: "Alpha"}, {Key: "B", Title: "Beta"}}
	rec := &changeRecorder{}
	c := NewController(ControllerConfig{
		Columns:   cols,
		Order:     []string{DefaultActionKey, "A", "B"},
		Visible:   []string{DefaultActionKey, "A", "B"},
		Fixed:     []string{DefaultActionKey},
		ActionKey: DefaultActionKey,
		OnChange:  rec.record,
	})
	assert.Equal(t, []string{"A", "B", DefaultActionKey}, c.Order())
	assert.Equal(t, []string{"A", "B", DefaultActionKey}, c.Visible())

	c.DragEnd(DropEvent{Source: "A", Target: "B"})
	require.Equal(t, 1, rec.calls)
	assert.Equal(t, []string{"B", "A", DefaultActionKey}, rec.order)
	assert.Equal(t, []string{"B", "A", DefaultActionKey}, rec.visible)

	c.DragEnd(DropEvent{Source: DefaultActionKey, Target: "B"})
	assert.Equal(t, 1, rec.calls, "dragging the action column is a no-op")
}

func hasDuplicates(keys []string) bool {
	return len(setOf(keys)) != len(keys)
}

func TestController_RandomOperationsKeepInvariants(t *testing.T) {
	cols := []Column{
		{Key: DefaultActionKey, Title: "Action"}, {Key: "a", Title: "Apple"}, {Key: "b", Title: "Banana"},
		{Key: "c", Title: "Cherry"}, {Key: "d", Title: "Date"}, {Key: "e", Title: "Elder"},
	}
	keys := Keys(cols)
	searches := []string{"", "a", "e", "ch", "zz"}

	tests := []struct {
		name  string
		fixed []string
	}{
		{"action seeded first", []string{"a"}},
		{"action also fixed", []string{"a", DefaultActionKey}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newFlat(t, cols, []string{"b", "d"}, tt.fixed...)
			rng := rand.New(rand.NewSource(42))

			for i := 0; i < 500; i++ {
				k := keys[rng.Intn(len(keys))]
				switch rng.Intn(4) {
				case 0:
					c.Toggle(k, rng.Intn(2) == 0)
				case 1:
					c.SetSearch(searches[rng.Intn(len(searches))])
					c.ToggleAll(rng.Intn(2) == 0)
				case 2:
					c.DragEnd(DropEvent{Source: k, Target: keys[rng.Intn(len(keys))]})
				case 3:
					c.DragEnd(DropEvent{Source: k})
				}

				order, visible := c.Order(), c.Visible()
				require.True(t, IsPermutation(order, keys), "order %v", order)
				require.True(t, IsSubsequence(visible, order), "visible %v order %v", visible, order)
				require.False(t, hasDuplicates(visible), "visible %v", visible)
				require.Contains(t, visible, "a")
				require.Equal(t, DefaultActionKey, order[len(order)-1])
				require.Equal(t, DefaultActionKey, visible[len(visible)-1])
			}
			assert.Positive(t, rec.calls)
		})
	}
}
