package controller

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gestorpme/erp-client/internal/testutil"
	"github.com/gestorpme/erp-client/pkg/api"
	"github.com/gestorpme/erp-client/pkg/filter"
	"github.com/gestorpme/erp-client/pkg/model"
	"github.com/gestorpme/erp-client/pkg/render"
	"github.com/gestorpme/erp-client/pkg/store"
)

// confirmAlways and confirmNever stub out the confirmation dialog.
var (
	confirmAlways = ConfirmFunc(func(string) bool { return true })
	confirmNever  = ConfirmFunc(func(string) bool { return false })
)

// setupController builds a clientes controller against the mock ERP.
func setupController(t *testing.T, mock *testutil.MockERP, confirm Confirmer) (*Controller[model.Cliente], *store.Session) {
	t.Helper()

	session := store.NewSession(store.NewMemory())
	if err := session.SetToken(context.Background(), "test-token"); err != nil {
		t.Fatal(err)
	}
	client, err := api.New(api.Config{BaseURL: mock.URL(), Session: session})
	if err != nil {
		t.Fatal(err)
	}

	ctrl, err := New(Config[model.Cliente]{
		Resource:  "clientes",
		Client:    client,
		Presenter: render.ClientePresenter{},
		Confirm:   confirm,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ctrl, session
}

func seedClientes(mock *testutil.MockERP, n int) {
	for i := 1; i <= n; i++ {
		mock.Seed("clientes", map[string]any{
			"id":     i,
			"nome":   "Cliente " + strings.Repeat("X", i%3+1),
			"email":  "c@example.com",
			"status": "Ativo",
		})
	}
}

func TestNew_Validation(t *testing.T) {
	session := store.NewSession(store.NewMemory())
	client, err := api.New(api.Config{BaseURL: "http://erp.local", Session: session})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(Config[model.Cliente]{Client: client, Presenter: render.ClientePresenter{}}); err == nil {
		t.Error("New without resource should fail")
	}
	if _, err := New(Config[model.Cliente]{Resource: "clientes", Presenter: render.ClientePresenter{}}); err == nil {
		t.Error("New without client should fail")
	}
	if _, err := New(Config[model.Cliente]{Resource: "clientes", Client: client}); err == nil {
		t.Error("New without presenter should fail")
	}
}

func TestLifecycle_InitToReady(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 3)
	ctrl, _ := setupController(t, mock, nil)

	if ctrl.Phase() != PhaseInit {
		t.Fatalf("initial phase = %q, want init", ctrl.Phase())
	}
	if ctrl.Fragment() != render.Loading() {
		t.Error("initial fragment should be the loading placeholder")
	}

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase after load = %q, want ready", ctrl.Phase())
	}
	if len(ctrl.Records()) != 3 {
		t.Errorf("loaded %d records, want 3", len(ctrl.Records()))
	}
	if !strings.Contains(ctrl.Fragment(), "<table") {
		t.Error("ready fragment should contain the rendered table")
	}
}

func TestLifecycle_FetchFailure(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	ctrl, _ := setupController(t, mock, nil)

	mock.SetResponse("/api/clientes", testutil.NewServerErrorResponse())

	if err := ctrl.Load(context.Background()); err == nil {
		t.Fatal("Load should have failed")
	}
	if ctrl.Phase() != PhaseError {
		t.Errorf("phase = %q, want error", ctrl.Phase())
	}
	if ctrl.Fragment() != render.Failed() {
		t.Errorf("error-state fragment = %q, want the failed placeholder", ctrl.Fragment())
	}
	if !strings.Contains(ctrl.Banner(), "falha interna do servidor") {
		t.Errorf("banner = %q, want the server message", ctrl.Banner())
	}

	// Retry recovers once the server does.
	mock.SetHandler("/api/clientes", nil)
	seedClientes(mock, 1)
	if err := ctrl.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase after retry = %q, want ready", ctrl.Phase())
	}
	if ctrl.Banner() != "" {
		t.Errorf("banner not cleared after successful retry: %q", ctrl.Banner())
	}
}

// A 401 clears the session and shows no banner; the unauthorized hook has
// already redirected.
func TestLifecycle_Unauthorized(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	ctrl, session := setupController(t, mock, nil)

	mock.SetResponse("/api/clientes", testutil.NewUnauthorizedResponse())

	err := ctrl.Load(context.Background())
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("err = %v, want unauthorized APIError", err)
	}
	if ctrl.Phase() != PhaseError {
		t.Errorf("phase = %q, want error", ctrl.Phase())
	}
	if ctrl.Banner() != "" {
		t.Errorf("401 raised a banner: %q", ctrl.Banner())
	}
	if session.Active(context.Background()) {
		t.Error("session still active after 401")
	}
}

func TestSearch_ResetsPage(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 23)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctrl.SetPage(3)
	if ctrl.Page() != 3 {
		t.Fatalf("page = %d, want 3", ctrl.Page())
	}

	ctrl.SetSearch("cliente")
	if ctrl.Page() != 1 {
		t.Errorf("page after search change = %d, want 1", ctrl.Page())
	}

	ctrl.SetPage(2)
	ctrl.SetFilter("status", "Ativo")
	if ctrl.Page() != 1 {
		t.Errorf("page after filter change = %d, want 1", ctrl.Page())
	}
}

func TestPagination(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 23)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if ctrl.TotalPages() != 3 {
		t.Fatalf("TotalPages = %d, want 3", ctrl.TotalPages())
	}
	if got := ctrl.PageButtons(); len(got) != 3 {
		t.Errorf("PageButtons = %v, want [1 2 3]", got)
	}
	if got := len(ctrl.PageItems()); got != 10 {
		t.Errorf("page 1 has %d items, want 10", got)
	}

	ctrl.SetPage(3)
	if got := len(ctrl.PageItems()); got != 3 {
		t.Errorf("page 3 has %d items, want 3", got)
	}

	// Past the end clamps to the last page.
	ctrl.SetPage(99)
	if ctrl.Page() != 3 {
		t.Errorf("page = %d, want clamped to 3", ctrl.Page())
	}
}

func TestSearch_NoMatchRendersEmpty(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 3)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctrl.SetSearch("zzz-sem-resultado")
	if ctrl.FilteredCount() != 0 {
		t.Fatalf("FilteredCount = %d, want 0", ctrl.FilteredCount())
	}
	if ctrl.Fragment() != render.Empty() {
		t.Errorf("fragment = %q, want the empty placeholder", ctrl.Fragment())
	}
	if ctrl.PageButtons() != nil {
		t.Errorf("PageButtons = %v, want none", ctrl.PageButtons())
	}
}

func TestSubmit_CreateRefetches(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 2)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	nova := model.Cliente{Nome: "Nova Cliente", Email: "nova@example.com", Status: model.StatusAtivo}
	if err := ctrl.Submit(context.Background(), nova); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase = %q, want ready", ctrl.Phase())
	}
	records := ctrl.Records()
	if len(records) != 3 {
		t.Fatalf("collection has %d records after create, want 3", len(records))
	}
	// The created record comes back from the re-fetch with a server id.
	created := records[2]
	if created.Nome != "Nova Cliente" || created.ID == 0 {
		t.Errorf("created record = %+v", created)
	}
}

func TestSubmit_UpdateRefetches(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	mock.Seed("clientes", map[string]any{"id": 5, "nome": "Maria", "status": "Ativo"})
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	edited := model.Cliente{ID: 5, Nome: "Maria Souza", Status: model.StatusAtivo}
	if err := ctrl.Submit(context.Background(), edited); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	records := ctrl.Records()
	if len(records) != 1 || records[0].Nome != "Maria Souza" {
		t.Errorf("collection after update = %+v", records)
	}
}

// A validation failure blocks the submit locally and keeps the phase out
// of mutating.
func TestSubmit_ValidationFailure(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 1)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := mock.GetRequestCount()

	err := ctrl.Submit(context.Background(), model.Cliente{Email: "sem-nome@example.com"})
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if mock.GetRequestCount() != before {
		t.Error("invalid record reached the server")
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase = %q, want ready", ctrl.Phase())
	}
}

func TestSubmit_APIFailureRaisesBanner(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 2)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	mock.SetResponse("/api/clientes", testutil.NewMessageErrorResponse("dados duplicados"))

	err := ctrl.Submit(context.Background(), model.Cliente{Nome: "Duplicada"})
	if err == nil {
		t.Fatal("Submit should have failed")
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase = %q, want ready", ctrl.Phase())
	}
	if !strings.Contains(ctrl.Banner(), "dados duplicados") {
		t.Errorf("banner = %q", ctrl.Banner())
	}
	// The collection is left as it was.
	if len(ctrl.Records()) != 2 {
		t.Errorf("collection changed after failed submit: %d records", len(ctrl.Records()))
	}

	ctrl.ClearBanner()
	if ctrl.Banner() != "" {
		t.Error("ClearBanner did not clear")
	}
}

// A declined confirmation sends no request and leaves everything as it was.
func TestRemove_Declined(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 3)
	ctrl, _ := setupController(t, mock, confirmNever)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := mock.GetRequestCount()

	if err := ctrl.Remove(context.Background(), 1, "Cliente X"); err != nil {
		t.Fatalf("Remove declined returned error: %v", err)
	}
	if mock.GetDeleteCount() != 0 {
		t.Error("declined delete reached the server")
	}
	if mock.GetRequestCount() != before {
		t.Error("declined delete triggered a request")
	}
	if len(ctrl.Records()) != 3 {
		t.Errorf("collection changed: %d records", len(ctrl.Records()))
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase = %q, want ready", ctrl.Phase())
	}
}

// A nil confirmer declines every delete.
func TestRemove_NilConfirmer(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 1)
	ctrl, _ := setupController(t, mock, nil)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Remove(context.Background(), 1, "Cliente"); err != nil {
		t.Fatal(err)
	}
	if mock.GetDeleteCount() != 0 {
		t.Error("delete dispatched without a confirmer")
	}
}

func TestRemove_Confirmed(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 3)
	ctrl, _ := setupController(t, mock, confirmAlways)

	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := ctrl.Remove(context.Background(), 2, "Cliente X"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if mock.GetDeleteCount() != 1 {
		t.Errorf("DeleteCount = %d, want 1", mock.GetDeleteCount())
	}
	if len(ctrl.Records()) != 2 {
		t.Errorf("collection has %d records after delete, want 2", len(ctrl.Records()))
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("phase = %q, want ready", ctrl.Phase())
	}
}

func TestSetView_Persists(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 1)

	backend := store.NewMemory()
	prefs := store.NewPrefs(backend)
	session := store.NewSession(backend)
	if err := session.SetToken(context.Background(), "t"); err != nil {
		t.Fatal(err)
	}
	client, err := api.New(api.Config{BaseURL: mock.URL(), Session: session})
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config[model.Cliente]{
		Resource:  "clientes",
		Client:    client,
		Presenter: render.ClientePresenter{},
		Prefs:     prefs,
	}
	ctrl, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctrl.SetView(render.ViewCards)
	if !strings.Contains(ctrl.Fragment(), "card-grid") {
		t.Error("fragment did not switch to cards")
	}

	// A new controller for the same resource picks the preference up.
	again, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if again.View() != render.ViewCards {
		t.Errorf("restored view = %q, want cards", again.View())
	}
}

func TestSetSort(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	mock.Seed("clientes",
		map[string]any{"id": 2, "nome": "Beatriz", "status": "Ativo"},
		map[string]any{"id": 1, "nome": "Carla", "status": "Ativo"},
		map[string]any{"id": 3, "nome": "Ana", "status": "Ativo"},
	)

	session := store.NewSession(store.NewMemory())
	if err := session.SetToken(context.Background(), "t"); err != nil {
		t.Fatal(err)
	}
	client, err := api.New(api.Config{BaseURL: mock.URL(), Session: session})
	if err != nil {
		t.Fatal(err)
	}

	ctrl, err := New(Config[model.Cliente]{
		Resource:  "clientes",
		Client:    client,
		Presenter: render.ClientePresenter{},
		Sort: func(items []model.Cliente, field, dir string) []model.Cliente {
			less := func(a, b model.Cliente) bool { return a.Nome < b.Nome }
			if field != "nome" {
				return items
			}
			if dir == filter.Desc {
				less = filter.Reversed(less)
			}
			return filter.Sort(items, less)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Fetch order until a sort is selected.
	if items := ctrl.PageItems(); items[0].Nome != "Beatriz" {
		t.Errorf("unsorted first item = %q, want fetch order", items[0].Nome)
	}

	ctrl.SetSort("nome", filter.Asc)
	items := ctrl.PageItems()
	if items[0].Nome != "Ana" || items[2].Nome != "Carla" {
		t.Errorf("ascending sort = %v", items)
	}

	ctrl.SetSort("nome", filter.Desc)
	items = ctrl.PageItems()
	if items[0].Nome != "Carla" || items[2].Nome != "Ana" {
		t.Errorf("descending sort = %v", items)
	}

	// An empty field restores the fetch order.
	ctrl.SetSort("", "")
	if items := ctrl.PageItems(); items[0].Nome != "Beatriz" {
		t.Errorf("cleared sort first item = %q, want fetch order", items[0].Nome)
	}
}

func TestSetSort_ResetsPage(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	seedClientes(mock, 23)

	session := store.NewSession(store.NewMemory())
	if err := session.SetToken(context.Background(), "t"); err != nil {
		t.Fatal(err)
	}
	client, err := api.New(api.Config{BaseURL: mock.URL(), Session: session})
	if err != nil {
		t.Fatal(err)
	}

	ctrl, err := New(Config[model.Cliente]{
		Resource:  "clientes",
		Client:    client,
		Presenter: render.ClientePresenter{},
		Sort: func(items []model.Cliente, field, dir string) []model.Cliente {
			return filter.Sort(items, func(a, b model.Cliente) bool { return a.ID < b.ID })
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctrl.SetPage(3)
	ctrl.SetSort("id", filter.Asc)
	if ctrl.Page() != 1 {
		t.Errorf("page after sort change = %d, want 1", ctrl.Page())
	}
}

func TestCustomFilter(t *testing.T) {
	mock := testutil.NewMockERP()
	defer mock.Close()
	mock.Seed("clientes",
		map[string]any{"id": 1, "nome": "Maria", "status": "Ativo"},
		map[string]any{"id": 2, "nome": "João", "status": "Inativo"},
	)

	session := store.NewSession(store.NewMemory())
	if err := session.SetToken(context.Background(), "t"); err != nil {
		t.Fatal(err)
	}
	client, err := api.New(api.Config{BaseURL: mock.URL(), Session: session})
	if err != nil {
		t.Fatal(err)
	}

	ctrl, err := New(Config[model.Cliente]{
		Resource:  "clientes",
		Client:    client,
		Presenter: render.ClientePresenter{},
		Filter: func(items []model.Cliente, st filter.State) []model.Cliente {
			return filter.Apply(items,
				filter.FreeText[model.Cliente](st.Search),
				filter.EnumEquals(st.Enum("status"), func(c model.Cliente) string { return string(c.Status) }),
			)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctrl.SetFilter("status", "Ativo")
	if ctrl.FilteredCount() != 1 {
		t.Fatalf("FilteredCount = %d, want 1", ctrl.FilteredCount())
	}

	ctrl.SetFilter("status", filter.All)
	if ctrl.FilteredCount() != 2 {
		t.Errorf("FilteredCount with %q = %d, want 2", filter.All, ctrl.FilteredCount())
	}
}
