// Package templates renders the HTML of the HR console. Components are
// templ.Components so that handlers render them the same way whether they
// produce a full page or an HTMX fragment.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

// html writes markup and keeps the first write error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

// raw writes s unescaped.
func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf writes a formatted string unescaped. Arguments must be escaped by the
// caller.
func (h *html) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// text writes s as escaped text.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on.
func (h *html) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

// render writes a nested component.
func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// vals writes an hx-vals attribute holding v as JSON.
func (h *html) vals(v map[string]any) {
	if h.err != nil {
		return
	}
	s, err := templ.JSONString(v)
	if err != nil {
		h.err = err
		return
	}
	h.attr("hx-vals", s)
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		fn(h)
		return h.err
	})
}

// View state travels with every request as these query or form fields.
const (
	ParamEdit      = "edit"
	ParamGrouped   = "grouped"
	ParamSearch    = "search"
	ParamPage      = "page"
	ParamPageSize  = "page_size"
	ParamColSearch = "colsearch"
	ParamColGroup  = "colgroup"
	ParamHidden    = "hidden"
)

// ViewQuery encodes req as query parameters. Zero values are left out.
func ViewQuery(req core.ViewRequest) url.Values {
	q := url.Values{}
	if req.EditMode {
		q.Set(ParamEdit, "1")
	}
	if req.Grouped {
		q.Set(ParamGrouped, "1")
	} else {
		q.Set(ParamGrouped, "0")
	}
	if req.Search != "" {
		q.Set(ParamSearch, req.Search)
	}
	if req.Page > 1 {
		q.Set(ParamPage, strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		q.Set(ParamPageSize, strconv.Itoa(req.PageSize))
	}
	if req.ColumnSearch != "" {
		q.Set(ParamColSearch, req.ColumnSearch)
	}
	if req.ColumnGroup != "" {
		q.Set(ParamColGroup, req.ColumnGroup)
	}
	if len(req.HiddenPanels) > 0 {
		q.Set(ParamHidden, strings.Join(req.HiddenPanels, ","))
	}
	return q
}

// TableURL returns the path of a table page or one of its fragments with req
// encoded as the query. suffix is "", "/rows" or "/settings".
func TableURL(key, suffix string, req core.ViewRequest) string {
	u := tablePath(key, suffix)
	if q := ViewQuery(req).Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// ColumnsURL returns the endpoint of a column command on table key.
func ColumnsURL(key string, kind core.CommandKind) string {
	return tablePath(key, "/columns/"+string(kind))
}

func tablePath(key, suffix string) string {
	return "/table/" + url.PathEscape(key) + suffix
}

func frameID(key string) string { return "table-" + key }

func stateID(key string) string { return "view-state-" + key }
