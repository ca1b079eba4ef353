// Package templates holds the HTML components of the lookup page.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PriceSort/internal/core"
)

// Form values shared by the page and its handler.
const (
	ParamPrice      = "price"
	ParamTarget     = "price_target"
	ParamCategory   = "category"
	ParamState      = "state"
	ParamNonDefault = "isNonDefault"
)

// NoResults is shown when a search matches nothing.
const NoResults = "該当する道具が見つかりませんでした。"

var tableHeaders = []string{"分類", "名前", "回数", "状態", "買値", "売値", "備考"}

// states offered by the search form, in display order.
var states = []string{core.StateNormal, core.StateBlessed, core.StateCursed}

// Page renders the full lookup page: search form followed by results.
func Page(q core.Query, items []core.Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>値段識別表</title><style>`)
		b.WriteString(pageStyle)
		b.WriteString(`</style></head><body><main>`)
		writeForm(&b, q)
		b.WriteString(`<div id="results">`)
		writeResults(&b, items)
		b.WriteString(`</div></main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Results renders only the results table, for partial page updates.
func Results(items []core.Item) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeResults(&b, items)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorAlert renders a user-facing error with its action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="error" role="alert"><p>`)
		b.WriteString(templ.EscapeString(message))
		b.WriteString(`</p>`)
		if action != "" {
			b.WriteString(`<p>`)
			b.WriteString(templ.EscapeString(action))
			b.WriteString(`</p>`)
		}
		b.WriteString(`<small>Code: `)
		b.WriteString(templ.EscapeString(code))
		b.WriteString(`</small></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeForm(b *strings.Builder, q core.Query) {
	b.WriteString(`<form id="search-form" method="get" action="/">`)

	b.WriteString(`<label>値段 <input type="text" inputmode="numeric" autofocus id="price" name="` + ParamPrice + `" value="`)
	b.WriteString(templ.EscapeString(q.Price))
	b.WriteString(`"></label>`)

	target := q.Target
	if target == "" {
		target = core.TargetAll
	}
	writeRadios(b, ParamTarget, core.Targets, target)

	writeRadios(b, ParamCategory, append([]string{core.AnyValue}, core.CategoryOrder[:]...), orAny(q.Category))
	writeRadios(b, ParamState, append([]string{core.AnyValue}, states...), orAny(q.State))

	b.WriteString(`<label><input type="checkbox" id="isNonDefault" name="` + ParamNonDefault + `" value="1"`)
	if q.NonDefaultOnly {
		b.WriteString(` checked`)
	}
	b.WriteString(`> 初期装備を除く</label>`)

	b.WriteString(`<button type="submit">検索</button></form>`)
}

func writeRadios(b *strings.Builder, name string, values []string, selected string) {
	b.WriteString(`<fieldset>`)
	for _, v := range values {
		ev := templ.EscapeString(v)
		b.WriteString(`<label><input type="radio" name="` + name + `" value="` + ev + `"`)
		if v == selected {
			b.WriteString(` checked`)
		}
		b.WriteString(`> ` + ev + `</label>`)
	}
	b.WriteString(`</fieldset>`)
}

func orAny(s string) string {
	if s == "" {
		return core.AnyValue
	}
	return s
}

func writeResults(b *strings.Builder, items []core.Item) {
	if len(items) == 0 {
		b.WriteString(`<p>` + NoResults + `</p>`)
		return
	}

	b.WriteString(`<table><thead><tr>`)
	for _, h := range tableHeaders {
		b.WriteString(`<th>` + h + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, it := range items {
		b.WriteString(`<tr`)
		if classes := it.Class(); len(classes) > 0 {
			b.WriteString(` class="` + strings.Join(classes, " ") + `"`)
		}
		b.WriteString(`>`)
		for _, cell := range []string{it.Category, it.Name, it.Uses, it.State, it.Buy, it.Sell, it.Notes} {
			b.WriteString(`<td>` + templ.EscapeString(cell) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</tbody></table>`)
}

const pageStyle = `body{font-family:sans-serif;margin:1rem}
fieldset{border:none;padding:0;margin:.25rem 0}
table{border-collapse:collapse;margin-top:1rem}
th,td{border:1px solid #ccc;padding:.25rem .5rem}
tr.new-category td{border-top:2px solid #333}
tr.cursed{background:#fde2e2}
tr.blessed{background:#e2f0fd}
tr.artificial{color:#888}
.error{color:#a00}`
