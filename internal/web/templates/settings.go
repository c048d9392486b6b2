package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// SettingsPanel renders the column settings of a table in its flat or
// grouped variant. Every control posts a column command and swaps the frame.
func SettingsPanel(tv *core.TableView) templ.Component {
	return component(func(h *html) {
		key := tv.Definition.Info.Key
		s := tv.View.Settings

		h.raw(`<aside class="settings"`)
		h.attr("id", "settings-"+key)
		if s.Grouped {
			h.raw(` data-variant="grouped">`)
			for _, p := range s.Panels {
				h.render(panel(key, p))
			}
		} else {
			h.raw(` data-variant="flat">`)
			h.render(searchBox(key, s.Search, ""))
			h.render(selectAll(key, s.SelectAll, ""))
			h.render(optionList(key, s.Options, ""))
		}
		h.render(sortableList(key, s.Sortable))
		h.raw(`</aside>`)
	})
}

// command writes the attributes shared by every settings control.
func command(h *html, key string, kind core.CommandKind) {
	h.attr("hx-post", ColumnsURL(key, kind))
	h.attr("hx-include", "#"+stateID(key))
	h.attr("hx-target", "#"+frameID(key))
	h.raw(` hx-swap="outerHTML"`)
}

func searchBox(key, value, group string) templ.Component {
	return component(func(h *html) {
		h.raw(`<input type="search" class="column-search" name="query" placeholder="Search columns" autocomplete="off"`)
		h.attr("value", value)
		command(h, key, core.CommandSearch)
		h.raw(` hx-trigger="keyup changed delay:200ms, search"`)
		if group != "" {
			h.vals(map[string]any{"group": group})
		}
		h.raw(`>`)
	})
}

// selectAll renders the tri-state checkbox. The indeterminate state has no
// HTML attribute; app.js applies data-indeterminate after each swap.
func selectAll(key string, state grid.SelectState, group string) templ.Component {
	return component(func(h *html) {
		h.raw(`<label class="select-all"><input type="checkbox" name="checked" value="true"`)
		h.flag("checked", state.Checked)
		if state.Indeterminate {
			h.raw(` data-indeterminate="true"`)
		}
		command(h, key, core.CommandToggleAll)
		if group != "" {
			h.vals(map[string]any{"group": group})
		}
		h.raw(`> Select all</label>`)
	})
}

func optionList(key string, opts []grid.Option, group string) templ.Component {
	return component(func(h *html) {
		if len(opts) == 0 {
			h.raw(`<p class="muted">No matching columns</p>`)
			return
		}
		h.raw(`<ul class="options">`)
		for _, o := range opts {
			h.raw(`<li><label><input type="checkbox" name="checked" value="true"`)
			h.flag("checked", o.Checked)
			command(h, key, core.CommandToggle)
			vals := map[string]any{"key": o.Key}
			if group != "" {
				vals["group"] = group
			}
			h.vals(vals)
			h.raw(`> `)
			h.text(o.Title)
			h.raw(`</label></li>`)
		}
		h.raw(`</ul>`)
	})
}

// panel renders one grouped settings panel. A collapsed panel only shows its
// header; its columns stay as they are in the table.
func panel(key string, p grid.PanelView) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="panel"`)
		h.attr("data-panel", p.ID)
		h.raw(`><button type="button" class="panel-toggle"`)
		h.attr("aria-expanded", strconv.FormatBool(p.Show))
		command(h, key, core.CommandPanel)
		h.vals(map[string]any{"group": p.ID, "checked": strconv.FormatBool(!p.Show)})
		h.raw(`>`)
		h.text(p.Title)
		h.rawf(` <span class="count">%d</span></button>`, len(p.Checked))
		if p.Show {
			h.render(searchBox(key, p.Search, p.ID))
			h.render(selectAll(key, p.SelectAll, p.ID))
			h.render(optionList(key, p.Options, p.ID))
		}
		h.raw(`</section>`)
	})
}

// sortableList renders the drag list. app.js posts the drop as a reorder
// command with source and target keys.
func sortableList(key string, opts []grid.Option) templ.Component {
	return component(func(h *html) {
		h.raw(`<ol class="sortable"`)
		h.attr("data-reorder-url", ColumnsURL(key, core.CommandReorder))
		h.attr("data-state", "#"+stateID(key))
		h.attr("data-target", "#"+frameID(key))
		h.raw(`>`)
		for _, o := range opts {
			h.raw(`<li draggable="true"`)
			h.attr("data-key", o.Key)
			if !o.Checked {
				h.raw(` class="hidden-column"`)
			}
			h.raw(`><span class="grip" aria-hidden="true">⋮⋮</span> `)
			h.text(o.Title)
			h.raw(`</li>`)
		}
		h.raw(`</ol>`)
	})
}
