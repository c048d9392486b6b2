package templates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// DateLayout is how date cells are printed.
const DateLayout = "Jan 2, 2006"

var numbers = message.NewPrinter(language.English)

// Cells is the core.CellRenderer of the web UI.
func Cells(spec core.ColumnSpec) grid.RenderFunc {
	switch spec.Format {
	case core.FormatDate:
		return func(v any, _ grid.Row, _ int) templ.Component {
			return grid.Text(formatDate(v))
		}
	case core.FormatMoney:
		return func(v any, row grid.Row, _ int) templ.Component {
			currency, _ := row["currency"].(string)
			return grid.Text(formatMoney(v, currency))
		}
	case core.FormatEnum:
		return func(v any, _ grid.Row, _ int) templ.Component {
			return grid.Text(enumLabel(spec.Values, v))
		}
	case core.FormatStatus:
		return func(v any, _ grid.Row, _ int) templ.Component {
			return statusBadge(spec.Values, v)
		}
	case core.FormatBool:
		return func(v any, _ grid.Row, _ int) templ.Component {
			return grid.Text(formatBool(v))
		}
	case core.FormatAction:
		return func(_ any, row grid.Row, index int) templ.Component {
			return actionButtons(row, index)
		}
	default:
		return func(v any, _ grid.Row, _ int) templ.Component {
			return grid.Text(FormatValue(v))
		}
	}
}

// FormatValue prints a cell value as plain text. Null database values print
// nothing.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String
	case pgtype.Numeric:
		f, ok := numericValue(val)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case pgtype.Date, pgtype.Timestamptz, time.Time:
		return formatDate(val)
	case pgtype.Bool, bool:
		return formatBool(val)
	default:
		return fmt.Sprint(v)
	}
}

func formatDate(v any) string {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format(DateLayout)
	case pgtype.Timestamptz:
		if !val.Valid {
			return ""
		}
		return val.Time.Format(DateLayout)
	case string:
		if t, err := time.Parse(time.DateOnly, val); err == nil {
			return t.Format(DateLayout)
		}
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// formatMoney prints an amount with thousands separators and two decimals,
// followed by the row's currency when it has one.
func formatMoney(v any, currency string) string {
	var f float64
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case pgtype.Numeric:
		n, ok := numericValue(val)
		if !ok {
			return ""
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return val
		}
		f = n
	default:
		return fmt.Sprint(v)
	}
	s := numbers.Sprintf("%.2f", f)
	if currency != "" {
		s += " " + currency
	}
	return s
}

func numericValue(n pgtype.Numeric) (float64, bool) {
	if !n.Valid {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, false
	}
	return f.Float64, true
}

func formatBool(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case pgtype.Bool:
		if !val.Valid {
			return ""
		}
		return formatBool(val.Bool)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// enumLabel maps a stored value to its catalog label. Unknown values print
// as stored.
func enumLabel(values map[string]string, v any) string {
	s := FormatValue(v)
	if label, ok := values[s]; ok {
		return label
	}
	return s
}

func statusBadge(values map[string]string, v any) templ.Component {
	return component(func(h *html) {
		s := FormatValue(v)
		if s == "" {
			return
		}
		h.raw(`<span`)
		h.attr("class", "badge badge-"+strings.ReplaceAll(strings.ToLower(s), " ", "-"))
		h.raw(`>`)
		h.text(enumLabel(values, s))
		h.raw(`</span>`)
	})
}

func actionButtons(row grid.Row, index int) templ.Component {
	return component(func(h *html) {
		id := FormatValue(row["id"])
		if id == "" {
			id = strconv.Itoa(index)
		}
		h.raw(`<div class="row-actions"><button type="button" class="btn btn-small"`)
		h.attr("data-row", id)
		h.raw(`>Open</button></div>`)
	})
}
