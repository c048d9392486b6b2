package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attributeColumns() []Column {
	return []Column{
		{Key: "A", Title: "Alpha"},
		{Key: "B", Title: "Beta"},
		{Key: "C", Title: "Cost center", Group: "g1"},
		{Key: "D", Title: "Division", Group: "g1"},
		{Key: "E", Title: "Eligibility", Group: "g2"},
		{Key: DefaultActionKey, Title: "Action"},
	}
}

func newGrouped(t *testing.T, order, visible []string) (*GroupedController, *changeRecorder) {
	t.Helper()
	rec := &changeRecorder{}
	g := NewGroupedController(GroupedConfig{
		ControllerConfig: ControllerConfig{
			Columns:   attributeColumns(),
			Order:     order,
			Visible:   visible,
			ActionKey: DefaultActionKey,
			OnChange:  rec.record,
		},
		AttributeKeys: []string{"C", "D", "E"},
		Titles:        map[string]string{"g1": "Finance"},
	})
	return g, rec
}

func TestGrouped_Partition(t *testing.T) {
	g, _ := newGrouped(t, nil, nil)

	assert.Equal(t, []string{GeneralGroup, "g1", "g2"}, g.Groups())
	panels := g.Panels()
	require.Len(t, panels, 3)
	assert.Equal(t, "General", panels[0].Title)
	assert.Equal(t, "Finance", panels[1].Title)
	assert.Equal(t, "g2", panels[2].Title)
	assert.Len(t, panels[0].Options, 2)
	assert.Len(t, panels[1].Options, 2)
	assert.Len(t, panels[2].Options, 1)
}

func TestGrouped_CheckAttributeAppendsBeforeAction(t *testing.T) {
	// Order as a host would derive it from activeKeys [A, B, action].
	g, rec := newGrouped(t, []string{"A", "B", DefaultActionKey, "C", "D", "E"}, []string{"A", "B", DefaultActionKey})
	assert.Equal(t, []string{"A", "B", "C", "D", "E", DefaultActionKey}, g.Order())

	g.Toggle("g1", "C", true)

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, []string{"A", "B", "C", DefaultActionKey}, rec.visible)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", DefaultActionKey}, rec.order)
}

func TestGrouped_ToggleRequiresMatchingGroup(t *testing.T) {
	g, rec := newGrouped(t, nil, []string{"A"})

	g.Toggle(GeneralGroup, "C", true)
	g.Toggle("missing", "A", false)
	assert.Zero(t, rec.calls)

	g.Toggle("g1", "C", true)
	g.Toggle("g1", "C", false)
	assert.Equal(t, 2, rec.calls)
	assert.Equal(t, []string{"A", DefaultActionKey}, g.Visible())
}

func TestGrouped_PerPanelSearchAndSelectAll(t *testing.T) {
	g, _ := newGrouped(t, nil, []string{"A", "E"})

	g.SetSearch("g1", "div")
	assert.Equal(t, SelectState{}, g.SelectAll("g1"))
	assert.Equal(t, SelectState{Indeterminate: true}, g.SelectAll(GeneralGroup))

	g.ToggleAll("g1", true)
	assert.Equal(t, []string{"A", "D", "E", DefaultActionKey}, g.Visible())
	assert.Equal(t, SelectState{Checked: true}, g.SelectAll("g1"))

	p, ok := g.Panel("g1")
	require.True(t, ok)
	assert.Equal(t, "div", p.Search)
	assert.Equal(t, []string{"D"}, p.Checked)

	g.ToggleAll("g1", false)
	assert.Equal(t, []string{"A", "E", DefaultActionKey}, g.Visible())
}

func TestGrouped_DragKeepsActionLast(t *testing.T) {
	g, rec := newGrouped(t, nil, []string{"A", "B", "C"})

	g.DragEnd(DropEvent{Source: DefaultActionKey, Target: "A"})
	assert.Equal(t, []string{"A", "B", "C", "D", "E", DefaultActionKey}, g.Order())
	assert.Zero(t, rec.calls, "dragging the action column is a no-op")

	g.DragEnd(DropEvent{Source: "C", Target: "A"})
	assert.Equal(t, []string{"C", "A", "B", "D", "E", DefaultActionKey}, g.Order())
	assert.Equal(t, []string{"C", "A", "B", DefaultActionKey}, g.Visible())

	g.DragEnd(DropEvent{Source: "E", Target: DefaultActionKey})
	assert.Equal(t, DefaultActionKey, g.Order()[len(g.Order())-1])
}

func TestGrouped_ClosedPanelKeepsColumnsVisible(t *testing.T) {
	g, rec := newGrouped(t, nil, []string{"A", "C"})

	g.SetShow("g1", false)
	p, _ := g.Panel("g1")
	assert.False(t, p.Show)
	assert.Equal(t, []string{"A", "C", DefaultActionKey}, g.Visible())
	assert.Zero(t, rec.calls)
}

func TestGrouped_FixedActionKeyIsNotDuplicated(t *testing.T) {
	rec := &changeRecorder{}
	g := NewGroupedController(GroupedConfig{
		ControllerConfig: ControllerConfig{
			Columns:   attributeColumns(),
			Visible:   []string{"A"},
			Fixed:     []string{"A", DefaultActionKey},
			ActionKey: DefaultActionKey,
			OnChange:  rec.record,
		},
		AttributeKeys: []string{"C", "D", "E"},
	})
	assert.Equal(t, []string{"A", DefaultActionKey}, g.Visible())

	g.Toggle("g1", "C", true)
	require.Equal(t, 1, rec.calls)
	assert.Equal(t, []string{"A", "C", DefaultActionKey}, rec.visible)
}

func TestGrouped_RandomOperationsKeepInvariants(t *testing.T) {
	keys := Keys(attributeColumns())
	tests := []struct {
		name  string
		order []string
		fixed []string
	}{
		{"default order", nil, nil},
		{"action seeded first", []string{DefaultActionKey, "E", "A", "C"}, nil},
		{"action also fixed", []string{DefaultActionKey, "B"}, []string{"A", DefaultActionKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroupedController(GroupedConfig{
				ControllerConfig: ControllerConfig{
					Columns:   attributeColumns(),
					Order:     tt.order,
					Visible:   []string{"A", DefaultActionKey},
					Fixed:     tt.fixed,
					ActionKey: DefaultActionKey,
				},
				AttributeKeys: []string{"C", "D", "E"},
			})
			groups := g.Groups()
			rng := rand.New(rand.NewSource(7))

			for i := 0; i < 500; i++ {
				group := groups[rng.Intn(len(groups))]
				k := keys[rng.Intn(len(keys))]
				switch rng.Intn(4) {
				case 0:
					g.Toggle(group, k, rng.Intn(2) == 0)
				case 1:
					g.ToggleAll(group, rng.Intn(2) == 0)
				case 2:
					g.DragEnd(DropEvent{Source: k, Target: keys[rng.Intn(len(keys))]})
				case 3:
					g.SetSearch(group, []string{"", "a", "c", "x"}[rng.Intn(4)])
				}

				order, visible := g.Order(), g.Visible()
				require.True(t, IsPermutation(order, keys))
				require.True(t, IsSubsequence(visible, order))
				require.False(t, hasDuplicates(visible), "visible %v", visible)
				require.Equal(t, DefaultActionKey, order[len(order)-1])
				require.Equal(t, DefaultActionKey, visible[len(visible)-1])
			}
		})
	}
}
