// Package paginate slices a filtered collection into fixed-size pages and
// computes the page-button controls to render, collapsing long runs of
// page numbers into ellipsis markers.
//
// All paging is in-memory slicing over the already-fetched collection;
// there is no server-side cursoring.
package paginate

// Defaults and bounds for page sizes, shared by every list page.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Ellipsis is the marker emitted by Controls where a run of page numbers
// has been collapsed.
const Ellipsis = -1

// window is the number of page buttons kept around the current page.
const window = 5

// State is the pagination state of one collection view.
// Page is 1-based and always clamped to the valid range after a filter
// change or page click.
type State struct {
	Page    int
	PerPage int
}

// New returns a state with page and per-page clamped to sane bounds.
func New(page, perPage int) State {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return State{Page: page, PerPage: perPage}
}

// TotalPages returns ceil(count / perPage). Zero items means zero pages.
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// Clamp returns a copy of the state with Page forced into
// [1, TotalPages(count)]. An empty collection clamps to page 1 so the
// state stays valid when records reappear.
func (s State) Clamp(count int) State {
	total := TotalPages(count, s.PerPage)
	if total < 1 {
		total = 1
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Page > total {
		s.Page = total
	}
	return s
}

// Offset returns the index of the first record on the current page.
func (s State) Offset() int {
	return (s.Page - 1) * s.PerPage
}

// Slice returns the records of the current page: items[(page-1)*perPage,
// page*perPage) clamped to the collection bounds. A page beyond the end
// yields an empty slice, never an error.
func Slice[T any](items []T, s State) []T {
	start := s.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + s.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Controls computes the page numbers to render as clickable buttons for
// the given current page. The first and last pages are always present, a
// window of pages stays centered on the current one, and any gap larger
// than a single page collapses to an Ellipsis marker. An empty collection
// renders no controls at all.
func Controls(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	half := window / 2
	show := map[int]bool{1: true, totalPages: true}
	for p := current - half; p <= current+half; p++ {
		if p >= 1 && p <= totalPages {
			show[p] = true
		}
	}

	controls := make([]int, 0, len(show)+2)
	prev := 0
	for p := 1; p <= totalPages; p++ {
		if !show[p] {
			continue
		}
		switch gap := p - prev; {
		case gap == 2:
			// A gap of exactly one page is shown, not collapsed.
			controls = append(controls, p-1, p)
		case gap > 2:
			controls = append(controls, Ellipsis, p)
		default:
			controls = append(controls, p)
		}
		prev = p
	}
	return controls
}
