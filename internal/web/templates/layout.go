package templates

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

// HTMXSource is where the pages load htmx from.
const HTMXSource = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// TableGroup is one navigation section.
type TableGroup struct {
	Name   string
	Tables []core.TableInfo
}

// SidebarParams marks the active navigation entry.
type SidebarParams struct {
	ActiveTable string
}

// Layout wraps body in the page shell with the table navigation.
func Layout(title string, sidebar SidebarParams, groups []TableGroup, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` · HR Console</title>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="` + HTMXSource + `" defer></script>`)
		h.raw(`<script src="/static/app.js" defer></script>`)
		h.raw(`</head><body><div class="shell">`)
		h.render(sidebarNav(sidebar, groups))
		h.raw(`<main class="content">`)
		h.render(body)
		h.raw(`</main></div></body></html>`)
	})
}

func sidebarNav(sidebar SidebarParams, groups []TableGroup) templ.Component {
	return component(func(h *html) {
		h.raw(`<nav class="sidebar"><a class="brand" href="/">HR Console</a>`)
		for _, g := range groups {
			h.raw(`<div class="nav-group"><h2>`)
			h.text(g.Name)
			h.raw(`</h2><ul>`)
			for _, t := range g.Tables {
				h.raw(`<li><a`)
				h.attr("href", "/table/"+url.PathEscape(t.Key))
				if t.Key == sidebar.ActiveTable {
					h.raw(` class="active" aria-current="page"`)
				}
				h.raw(`>`)
				h.text(t.Label)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></div>`)
		}
		h.raw(`</nav>`)
	})
}

// Dashboard lists every table by group.
func Dashboard(groups []TableGroup) templ.Component {
	body := component(func(h *html) {
		h.raw(`<h1>Tables</h1>`)
		for _, g := range groups {
			h.raw(`<section class="table-group"><h2>`)
			h.text(g.Name)
			h.raw(`</h2><div class="cards">`)
			for _, t := range g.Tables {
				h.raw(`<a class="card"`)
				h.attr("href", "/table/"+url.PathEscape(t.Key))
				h.raw(`><h3>`)
				h.text(t.Label)
				h.raw(`</h3>`)
				if t.Description != "" {
					h.raw(`<p>`)
					h.text(t.Description)
					h.raw(`</p>`)
				}
				h.raw(`</a>`)
			}
			h.raw(`</div></section>`)
		}
	})
	return Layout("Tables", SidebarParams{}, groups, body)
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` <span>`)
			h.text(action)
			h.raw(`</span>`)
		}
		if code != "" {
			h.raw(` <code>`)
			h.text(code)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
	})
}

// ErrorPage renders an error as a full page.
func ErrorPage(groups []TableGroup, msg core.UserMessage) templ.Component {
	return Layout("Error", SidebarParams{}, groups, ErrorAlert(msg.Message, msg.Action, msg.Code))
}
