// Package controller owns the per-page state of one collection view and
// drives the fetch -> filter -> sort -> paginate -> render pipeline. All state
// mutation goes through methods, so state transitions are testable
// without any HTTP or markup concerns.
package controller

import (
	"context"

	"github.com/gestorpme/erp-client/pkg/api"
	"github.com/gestorpme/erp-client/pkg/filter"
	"github.com/gestorpme/erp-client/pkg/paginate"
	"github.com/gestorpme/erp-client/pkg/render"
	"github.com/gestorpme/erp-client/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for page controller activity.
var (
	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_renders_total",
		Help: "Total fragment renders by resource and view",
	}, []string{"resource", "view"})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_mutations_total",
		Help: "Total mutations by resource, operation and outcome",
	}, []string{"resource", "operation", "outcome"})
)

// Phase is the page controller lifecycle state. No phase is terminal.
type Phase string

const (
	// PhaseInit is the state before the first load.
	PhaseInit Phase = "init"

	// PhaseLoading means a collection fetch is in flight.
	PhaseLoading Phase = "loading"

	// PhaseReady means the collection is loaded and rendered.
	PhaseReady Phase = "ready"

	// PhaseMutating means a create/update/delete is in flight.
	PhaseMutating Phase = "mutating"

	// PhaseError means the last fetch failed; Retry leaves it.
	PhaseError Phase = "error"
)

// Confirmer gates destructive operations behind an explicit user
// confirmation. The blocking browser dialog is replaced by whatever the
// embedding surface provides.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Config assembles one page controller.
type Config[T filter.Searchable] struct {
	// Resource is the API collection name, e.g. "clientes".
	Resource string

	// Client performs all fetches and mutations.
	Client *api.Client

	// Presenter maps records to view-models.
	Presenter render.Presenter[T]

	// Filter applies the page's predicate set to the collection.
	// Nil means no filtering beyond free-text search.
	Filter func(items []T, st filter.State) []T

	// Sort orders the filtered collection by a named field and direction.
	// Nil or an unknown field keeps the fetch order.
	Sort func(items []T, field, dir string) []T

	// PerPage is the page size (default paginate.DefaultPerPage).
	PerPage int

	// Confirm gates Remove. When nil every delete is declined.
	Confirm Confirmer

	// Prefs persists the view mode across reloads when set.
	Prefs *store.Prefs
}

// Controller is the page controller for one entity collection.
// It is single-owner state driven from one goroutine, matching the
// event-loop model of the surface it serves; it is not safe for
// concurrent use.
type Controller[T filter.Searchable] struct {
	cfg    Config[T]
	logger zerolog.Logger

	phase     Phase
	all       []T
	filtered  []T
	filters   filter.State
	sortField string
	sortDir   string
	pages     paginate.State
	view      render.View
	banner    string
	fragment  string
	lastErr   error
}

// New creates a controller in the init phase. Call Load to fetch.
func New[T filter.Searchable](cfg Config[T]) (*Controller[T], error) {
	if cfg.Resource == "" {
		return nil, errEmptyResource
	}
	if cfg.Client == nil {
		return nil, errNilClient
	}
	if cfg.Presenter == nil {
		return nil, errNilPresenter
	}

	c := &Controller[T]{
		cfg:      cfg,
		logger:   log.With().Str("component", "controller").Str("resource", cfg.Resource).Logger(),
		phase:    PhaseInit,
		filters:  filter.NewState(),
		pages:    paginate.New(1, cfg.PerPage),
		view:     render.ViewTable,
		fragment: render.Loading(),
	}
	if cfg.Prefs != nil {
		c.view = render.ParseView(cfg.Prefs.View(context.Background(), cfg.Resource, string(render.ViewTable)))
	}
	return c, nil
}

// Load fetches the collection and moves to ready or error. There is no
// request sequencing: a superseded fetch still applies when it resolves,
// so rapid successive loads can briefly show stale results.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.phase = PhaseLoading
	c.fragment = render.Loading()

	records, err := api.FetchCollection[T](ctx, c.cfg.Client, c.cfg.Resource, api.Query{})
	if err != nil {
		c.fail(err)
		return err
	}

	c.all = records
	c.phase = PhaseReady
	c.banner = ""
	c.lastErr = nil
	c.rerender()

	c.logger.Debug().Int("records", len(records)).Msg("Collection loaded")
	return nil
}

// Retry re-runs the fetch after a failure.
func (c *Controller[T]) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// SetSearch updates the free-text term. Any filter change resets the
// current page to 1.
func (c *Controller[T]) SetSearch(term string) {
	c.filters.Search = term
	c.pages.Page = 1
	c.rerender()
}

// SetFilter updates a named enum filter and resets to page 1.
func (c *Controller[T]) SetFilter(name, value string) {
	c.filters = c.filters.SetEnum(name, value)
	c.pages.Page = 1
	c.rerender()
}

// SetSort orders the collection by a named field. An empty field restores
// the fetch order. Like any filter change it resets to page 1.
func (c *Controller[T]) SetSort(field, dir string) {
	c.sortField = field
	c.sortDir = dir
	c.pages.Page = 1
	c.rerender()
}

// SetPage moves to the given page, clamped to the filtered range.
func (c *Controller[T]) SetPage(page int) {
	c.pages.Page = page
	c.rerender()
}

// SetPerPage changes the page size and resets to page 1.
func (c *Controller[T]) SetPerPage(perPage int) {
	c.pages = paginate.New(1, perPage)
	c.rerender()
}

// SetView switches between table and cards, persisting the choice when a
// preference store is configured.
func (c *Controller[T]) SetView(view render.View) {
	c.view = view
	if c.cfg.Prefs != nil {
		if err := c.cfg.Prefs.SetView(context.Background(), c.cfg.Resource, string(view)); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to persist view preference")
		}
	}
	c.rerender()
}

// Submit dispatches a create (zero id) or update (non-zero id) and then
// re-fetches the whole collection. A validation failure blocks the submit
// locally; an API or network failure leaves the collection as it was and
// raises the banner.
func (c *Controller[T]) Submit(ctx context.Context, record T) error {
	operation := "create"
	if record.RecordID() != 0 {
		operation = "update"
	}

	c.phase = PhaseMutating

	var err error
	if operation == "create" {
		err = c.cfg.Client.Create(ctx, c.cfg.Resource, record)
	} else {
		err = c.cfg.Client.Update(ctx, c.cfg.Resource, record.RecordID(), record)
	}
	if err != nil {
		mutationsTotal.WithLabelValues(c.cfg.Resource, operation, "failure").Inc()
		c.phase = PhaseReady
		c.raiseBanner(err)
		c.rerender()
		return err
	}

	mutationsTotal.WithLabelValues(c.cfg.Resource, operation, "success").Inc()
	return c.Load(ctx)
}

// Remove asks for confirmation and dispatches the delete. A declined
// confirmation issues no request and leaves the collection untouched.
func (c *Controller[T]) Remove(ctx context.Context, id int64, label string) error {
	if c.cfg.Confirm == nil || !c.cfg.Confirm.Confirm("Excluir "+label+"?") {
		c.logger.Debug().Int64("id", id).Msg("Delete declined")
		return nil
	}

	c.phase = PhaseMutating
	if err := c.cfg.Client.Delete(ctx, c.cfg.Resource, id); err != nil {
		mutationsTotal.WithLabelValues(c.cfg.Resource, "delete", "failure").Inc()
		c.phase = PhaseReady
		c.raiseBanner(err)
		c.rerender()
		return err
	}

	mutationsTotal.WithLabelValues(c.cfg.Resource, "delete", "success").Inc()
	return c.Load(ctx)
}

// fail records a fetch failure and enters the error phase.
func (c *Controller[T]) fail(err error) {
	c.phase = PhaseError
	c.lastErr = err
	c.fragment = render.Failed()
	c.raiseBanner(err)
	c.logger.Error().Err(err).Msg("Collection fetch failed")
}

// raiseBanner surfaces an error as the transient banner text. A 401 shows
// no banner: the session is already cleared and the unauthorized hook has
// redirected.
func (c *Controller[T]) raiseBanner(err error) {
	if apiErr, ok := err.(*api.APIError); ok && apiErr.Unauthorized() {
		c.banner = ""
		return
	}
	c.banner = err.Error()
}

// rerender re-runs filter -> sort -> paginate -> render over the loaded
// collection. Triggered after every state change.
func (c *Controller[T]) rerender() {
	if c.cfg.Filter != nil {
		c.filtered = c.cfg.Filter(c.all, c.filters)
	} else {
		c.filtered = filter.Apply(c.all, filter.FreeText[T](c.filters.Search))
	}
	if c.cfg.Sort != nil && c.sortField != "" {
		c.filtered = c.cfg.Sort(c.filtered, c.sortField, c.sortDir)
	}

	c.pages = c.pages.Clamp(len(c.filtered))
	pageItems := paginate.Slice(c.filtered, c.pages)

	if c.phase == PhaseLoading {
		c.fragment = render.Loading()
		return
	}
	c.fragment = render.Fragment(pageItems, c.view, c.cfg.Presenter)
	rendersTotal.WithLabelValues(c.cfg.Resource, string(c.view)).Inc()
}

// Phase returns the current lifecycle state.
func (c *Controller[T]) Phase() Phase { return c.phase }

// Fragment returns the last rendered markup fragment.
func (c *Controller[T]) Fragment() string { return c.fragment }

// Banner returns the transient error banner text, "" when none.
func (c *Controller[T]) Banner() string { return c.banner }

// ClearBanner dismisses the transient banner.
func (c *Controller[T]) ClearBanner() { c.banner = "" }

// View returns the active view mode.
func (c *Controller[T]) View() render.View { return c.view }

// Page returns the current (clamped) page number.
func (c *Controller[T]) Page() int { return c.pages.Page }

// TotalPages returns the page count of the filtered collection.
func (c *Controller[T]) TotalPages() int {
	return paginate.TotalPages(len(c.filtered), c.pages.PerPage)
}

// PageButtons returns the page controls for the current state.
func (c *Controller[T]) PageButtons() []int {
	return paginate.Controls(c.pages.Page, c.TotalPages())
}

// PageItems returns the records of the current page.
func (c *Controller[T]) PageItems() []T {
	return paginate.Slice(c.filtered, c.pages)
}

// FilteredCount returns the size of the filtered collection.
func (c *Controller[T]) FilteredCount() int { return len(c.filtered) }

// Records returns the full loaded collection.
func (c *Controller[T]) Records() []T { return c.all }
