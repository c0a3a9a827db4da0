// Package render maps pages of records to markup fragments. The record to
// view-model transform is pure and separated from fragment assembly, so
// formatting can be tested without looking at markup.
package render

import (
	"fmt"
	"strings"

	"github.com/gestorpme/erp-client/pkg/dates"
)

// View selects the active renderer for a page.
type View string

const (
	// ViewTable renders records as table rows.
	ViewTable View = "table"

	// ViewCards renders records as cards.
	ViewCards View = "cards"
)

// ParseView normalizes a stored or user-supplied view name.
// Unknown values fall back to the table view.
func ParseView(s string) View {
	if View(s) == ViewCards {
		return ViewCards
	}
	return ViewTable
}

// Cell is one table cell. Escape marks user-supplied text that must be
// entity-escaped; numeric and enum cells are emitted verbatim.
type Cell struct {
	Text   string
	Escape bool
}

// Row is the table view-model of a single record. ID feeds the action
// triggers (edit/delete/view) embedded in the fragment.
type Row struct {
	ID    int64
	Cells []Cell
}

// Field is one labeled value on a card.
type Field struct {
	Label  string
	Value  string
	Escape bool
}

// Card is the card view-model of a single record.
type Card struct {
	ID       int64
	Title    string
	Subtitle string
	Badge    string
	Fields   []Field
}

// Presenter turns records of one entity type into view-models.
type Presenter[T any] interface {
	// Columns returns the table header labels.
	Columns() []string

	// Row maps a record to its table row.
	Row(record T) Row

	// Card maps a record to its card.
	Card(record T) Card
}

// FormatBRL renders a value as brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	whole := fmt.Sprintf("%.2f", value)
	intPart := whole[:len(whole)-3]
	frac := whole[len(whole)-2:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a raw API date as DD/MM/YYYY, passing unparseable
// values through unchanged.
func FormatDate(raw string) string {
	return dates.Display(raw)
}
