package render

import (
	"fmt"
	"strings"
)

// Fixed placeholders. Loading and Empty are deliberately distinct so a page
// never shows "no records" while a fetch is still in flight.
const (
	loadingFragment = `<div class="placeholder placeholder-loading">Carregando...</div>`
	emptyFragment   = `<div class="placeholder placeholder-empty">Nenhum registro encontrado</div>`
	failedFragment  = `<div class="placeholder placeholder-error">Não foi possível carregar os dados</div>`
)

// Loading returns the fragment shown while a collection fetch is in flight.
func Loading() string {
	return loadingFragment
}

// Empty returns the fragment shown when the filtered collection has no
// records.
func Empty() string {
	return emptyFragment
}

// Failed returns the fragment shown when a collection fetch failed and the
// page sits in its error state waiting for a retry.
func Failed() string {
	return failedFragment
}

// Fragment renders a page of records in the selected view. An empty page
// yields the Empty placeholder regardless of view.
func Fragment[T any](items []T, view View, p Presenter[T]) string {
	if len(items) == 0 {
		return Empty()
	}
	if view == ViewCards {
		return Cards(items, p)
	}
	return Table(items, p)
}

// Table renders records as a <table> fragment. Each row carries the action
// triggers wired up after the fragment is swapped into place.
func Table[T any](items []T, p Presenter[T]) string {
	var b strings.Builder
	b.WriteString(`<table class="data-table"><thead><tr>`)
	for _, col := range p.Columns() {
		fmt.Fprintf(&b, "<th>%s</th>", EscapeHTML(col))
	}
	b.WriteString(`<th class="col-actions"></th></tr></thead><tbody>`)
	for _, item := range items {
		row := p.Row(item)
		fmt.Fprintf(&b, `<tr data-id="%d">`, row.ID)
		for _, cell := range row.Cells {
			text := cell.Text
			if cell.Escape {
				text = EscapeHTML(text)
			}
			fmt.Fprintf(&b, "<td>%s</td>", text)
		}
		b.WriteString(`<td class="col-actions">`)
		writeActions(&b, row.ID)
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// Cards renders records as a card grid fragment.
func Cards[T any](items []T, p Presenter[T]) string {
	var b strings.Builder
	b.WriteString(`<div class="card-grid">`)
	for _, item := range items {
		card := p.Card(item)
		fmt.Fprintf(&b, `<div class="card" data-id="%d">`, card.ID)
		fmt.Fprintf(&b, `<div class="card-title">%s</div>`, EscapeHTML(card.Title))
		if card.Subtitle != "" {
			fmt.Fprintf(&b, `<div class="card-subtitle">%s</div>`, EscapeHTML(card.Subtitle))
		}
		if card.Badge != "" {
			fmt.Fprintf(&b, `<span class="badge badge-%s">%s</span>`, card.Badge, card.Badge)
		}
		for _, f := range card.Fields {
			value := f.Value
			if f.Escape {
				value = EscapeHTML(value)
			}
			fmt.Fprintf(&b, `<div class="card-field"><span>%s</span>%s</div>`, EscapeHTML(f.Label), value)
		}
		b.WriteString(`<div class="card-actions">`)
		writeActions(&b, card.ID)
		b.WriteString("</div></div>")
	}
	b.WriteString("</div>")
	return b.String()
}

// writeActions emits the edit/delete/view triggers for one record.
func writeActions(b *strings.Builder, id int64) {
	fmt.Fprintf(b, `<button class="action-view" data-id="%d">ver</button>`, id)
	fmt.Fprintf(b, `<button class="action-edit" data-id="%d">editar</button>`, id)
	fmt.Fprintf(b, `<button class="action-delete" data-id="%d">excluir</button>`, id)
}
