package templates

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// TableParams is everything the table frame renders.
type TableParams struct {
	Table *core.TableView

	// Notice is shown above the table, e.g. when a column change could not
	// be saved.
	Notice *core.UserMessage
}

// TablePage renders a table inside the page layout.
func TablePage(groups []TableGroup, p TableParams) templ.Component {
	def := p.Table.Definition
	return Layout(def.Info.Label, SidebarParams{ActiveTable: def.Info.Key}, groups, TableFrame(p))
}

// TableFrame renders the swappable part of a table page: toolbar, settings
// panel, grid and pager. Every HTMX interaction replaces the whole frame.
func TableFrame(p TableParams) templ.Component {
	return component(func(h *html) {
		tv := p.Table
		key := tv.Definition.Info.Key
		view := tv.View

		h.raw(`<section class="table-frame"`)
		h.attr("id", frameID(key))
		h.attr("data-table", key)
		h.attr("data-mode", view.State.Mode.String())
		h.attr("data-phase", view.State.Phase.String())
		h.raw(`>`)

		h.render(toolbar(tv))
		if p.Notice != nil {
			h.render(ErrorAlert(p.Notice.Message, p.Notice.Action, p.Notice.Code))
		}
		if view.State.Mode == grid.ModeEdit {
			h.render(SettingsPanel(tv))
		}

		h.raw(`<div class="table-scroll"><table class="grid"`)
		h.attr("data-resize-url", ColumnsURL(key, core.CommandResize))
		h.raw(`><thead><tr>`)
		for _, hd := range view.Headers {
			h.render(headerCell(hd))
		}
		h.raw(`</tr></thead>`)
		h.render(tableBody(view))
		h.raw(`</table></div>`)

		if view.State.Phase == grid.PhaseReady {
			h.render(pager(key, tv.Request, view.Pagination))
		} else {
			req := tv.Request
			h.raw(`<div class="loader"`)
			h.attr("hx-get", TableURL(key, "/rows", req))
			h.raw(` hx-trigger="load"`)
			h.attr("hx-target", "#"+frameID(key))
			h.raw(` hx-swap="outerHTML"></div>`)
		}
		h.raw(`</section>`)
	})
}

// toolbar holds the view state form, the row search and the mode switches.
func toolbar(tv *core.TableView) templ.Component {
	return component(func(h *html) {
		def := tv.Definition
		key := def.Info.Key
		req := tv.Request
		target := "#" + frameID(key)

		h.raw(`<header class="toolbar"><h1>`)
		h.text(def.Info.Label)
		h.raw(`</h1>`)

		// The state form carries the view request on every interaction.
		h.raw(`<form class="view-state"`)
		h.attr("id", stateID(key))
		h.attr("hx-get", tablePath(key, "/rows"))
		h.raw(` hx-trigger="submit, keyup changed delay:300ms from:find input[name=search]"`)
		h.attr("hx-target", target)
		h.raw(` hx-swap="outerHTML">`)
		q := ViewQuery(req)
		for _, name := range []string{ParamEdit, ParamGrouped, ParamPage, ParamPageSize, ParamColSearch, ParamColGroup, ParamHidden} {
			if v := q.Get(name); v != "" {
				h.raw(`<input type="hidden"`)
				h.attr("name", name)
				h.attr("value", v)
				h.raw(`>`)
			}
		}
		h.raw(`<input type="search" name="search" placeholder="Search rows" autocomplete="off"`)
		h.attr("value", req.Search)
		h.raw(`></form>`)

		h.raw(`<div class="toolbar-actions">`)
		edit := req
		edit.EditMode = !req.EditMode
		label := "Edit columns"
		if req.EditMode {
			label = "Done"
		}
		h.render(switchButton(key, edit, label))

		if len(def.AttributeKeys) > 0 && req.EditMode {
			grouped := req
			grouped.Grouped = !req.Grouped
			grouped.ColumnSearch, grouped.ColumnGroup = "", ""
			label := "Grouped settings"
			if req.Grouped {
				label = "Flat settings"
			}
			h.render(switchButton(key, grouped, label))
		}

		if req.EditMode {
			h.raw(`<button type="button" class="btn btn-ghost"`)
			h.attr("hx-delete", tablePath(key, "/columns"))
			h.attr("hx-include", "#"+stateID(key))
			h.attr("hx-target", target)
			h.raw(` hx-swap="outerHTML" hx-confirm="Restore the default columns?">Reset columns</button>`)
		}
		h.raw(`</div></header>`)
	})
}

func switchButton(key string, req core.ViewRequest, label string) templ.Component {
	return component(func(h *html) {
		h.raw(`<button type="button" class="btn"`)
		h.attr("hx-get", TableURL(key, "/rows", req))
		h.attr("hx-push-url", TableURL(key, "", req))
		h.attr("hx-target", "#"+frameID(key))
		h.raw(` hx-swap="outerHTML">`)
		h.text(label)
		h.raw(`</button>`)
	})
}

// headerCell renders one header. Resizable columns get a drag handle bounded
// by data-min and data-max; inert handles are drawn but ignore input.
func headerCell(hd grid.HeaderSpec) templ.Component {
	return component(func(h *html) {
		h.raw(`<th`)
		h.attr("data-key", hd.Key)
		if hd.Pinned != grid.PinNone {
			h.attr("class", "pinned-"+hd.Pinned.String())
		}
		if hd.Width > 0 {
			h.attr("style", fmt.Sprintf("width:%dpx;max-width:%dpx", hd.Width, hd.Width))
		}
		h.raw(`>`)
		if !hd.Resizable {
			h.text(hd.Title)
			h.raw(`</th>`)
			return
		}
		h.raw(`<div class="resizable"`)
		h.attr("data-key", hd.Key)
		h.attr("data-width", strconv.Itoa(hd.Width))
		h.attr("data-min", strconv.Itoa(hd.MinWidth))
		if hd.MaxWidth > 0 {
			h.attr("data-max", strconv.Itoa(hd.MaxWidth))
		}
		h.raw(`><span class="title">`)
		h.text(hd.Title)
		h.raw(`</span><span class="resize-handle"`)
		if hd.Inert {
			h.raw(` data-inert="true" inert`)
		}
		h.raw(` aria-hidden="true"></span></div></th>`)
	})
}

// tableBody renders the skeleton, the staggered rows or an empty state.
func tableBody(view grid.View) templ.Component {
	return component(func(h *html) {
		h.raw(`<tbody>`)
		span := max(len(view.Headers), 1)
		if len(view.Headers) == 0 {
			h.rawf(`<tr class="empty"><td colspan="%d">No columns selected</td></tr>`, span)
			h.raw(`</tbody>`)
			return
		}
		if view.State.Phase == grid.PhaseReady && len(view.Rows) == 0 {
			h.rawf(`<tr class="empty"><td colspan="%d">No rows found</td></tr>`, span)
			h.raw(`</tbody>`)
			return
		}
		for _, row := range view.Rows {
			h.raw(`<tr`)
			h.attr("data-row", row.Key)
			if row.Skeleton {
				h.raw(` class="skeleton-row" aria-busy="true"`)
			} else {
				h.raw(` class="row-enter"`)
			}
			h.raw(`>`)
			for _, cell := range row.Cells {
				h.render(bodyCell(cell))
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody>`)
	})
}

func bodyCell(cell grid.CellView) templ.Component {
	return component(func(h *html) {
		h.raw(`<td`)
		h.attr("data-key", cell.Key)
		style := ""
		if cell.MaxWidth > 0 {
			style = fmt.Sprintf("max-width:%dpx;", cell.MaxWidth)
		}
		if !cell.Skeleton {
			style += fmt.Sprintf("animation-delay:%dms;animation-duration:%dms",
				cell.Delay.Milliseconds(), cell.Duration.Milliseconds())
		}
		if style != "" {
			h.attr("style", style)
		}
		h.raw(`>`)
		h.render(cell.Content)
		h.raw(`</td>`)
	})
}

// pager renders the page position and the previous and next buttons.
func pager(key string, req core.ViewRequest, p grid.Pagination) templ.Component {
	return component(func(h *html) {
		pages := max(p.TotalPages, 1)
		h.raw(`<nav class="pager" aria-label="Pagination"><span>`)
		h.rawf(`Page %d of %d · %d rows`, p.Page, pages, p.Total)
		h.raw(`</span>`)
		step := func(label string, page int, enabled bool) {
			h.raw(`<button type="button" class="btn"`)
			if enabled {
				r := req
				r.Page = page
				h.attr("hx-get", TableURL(key, "/rows", r))
				h.attr("hx-target", "#"+frameID(key))
				h.raw(` hx-swap="outerHTML"`)
			}
			h.flag("disabled", !enabled)
			h.raw(`>`)
			h.text(label)
			h.raw(`</button>`)
		}
		step("Previous", p.Page-1, p.Page > 1)
		step("Next", p.Page+1, p.Page < pages)
		h.raw(`</nav>`)
	})
}
