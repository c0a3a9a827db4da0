// Package erp wires the generic collection engine to the concrete
// dashboard pages: one preset per entity bundling resource name,
// presenter and filter set.
package erp

import (
	"strings"

	"github.com/gestorpme/erp-client/pkg/api"
	"github.com/gestorpme/erp-client/pkg/controller"
	"github.com/gestorpme/erp-client/pkg/filter"
	"github.com/gestorpme/erp-client/pkg/model"
	"github.com/gestorpme/erp-client/pkg/render"
	"github.com/gestorpme/erp-client/pkg/store"
)

// API resource names.
const (
	ResourceClientes = "clientes"
	ResourceProdutos = "produtos"
	ResourceVendas   = "vendas"
	ResourceUsuarios = "usuarios"
)

// Filter names shared by the pages.
const (
	FilterStatus    = "status"
	FilterCategoria = "categoria"
	FilterPerfil    = "perfil"
	FilterEstoque   = "estoque"
)

// Sort fields accepted by every page. SortNome orders by the record's
// display label (the customer name on the sales page).
const (
	SortID   = "id"
	SortNome = "nome"
)

// sortRecords orders items by id or by the given label, ascending unless
// dir is filter.Desc. An unknown field keeps the fetch order.
func sortRecords[T filter.Searchable](items []T, field, dir string, label func(T) string) []T {
	var less func(a, b T) bool
	switch field {
	case SortID:
		less = func(a, b T) bool { return a.RecordID() < b.RecordID() }
	case SortNome:
		less = func(a, b T) bool {
			return strings.ToLower(label(a)) < strings.ToLower(label(b))
		}
	default:
		return items
	}
	if dir == filter.Desc {
		less = filter.Reversed(less)
	}
	return filter.Sort(items, less)
}

// ClienteFilter applies the customer page's predicate set.
func ClienteFilter(items []model.Cliente, st filter.State) []model.Cliente {
	return filter.Apply(items,
		filter.FreeText[model.Cliente](st.Search),
		filter.EnumEquals(st.Enum(FilterStatus), func(c model.Cliente) string { return string(c.Status) }),
	)
}

// ProdutoFilter applies the product page's predicate set, including the
// bucketed stock-level filter.
func ProdutoFilter(items []model.Produto, st filter.State) []model.Produto {
	return filter.Apply(items,
		filter.FreeText[model.Produto](st.Search),
		filter.EnumEquals(st.Enum(FilterStatus), func(p model.Produto) string { return string(p.Status) }),
		filter.EnumEquals(st.Enum(FilterCategoria), func(p model.Produto) string { return p.Categoria }),
		filter.Bucket(st.Enum(FilterEstoque), func(p model.Produto) string { return string(p.StockLevel()) }),
	)
}

// VendaFilter applies the sales page's predicate set.
func VendaFilter(items []model.Venda, st filter.State) []model.Venda {
	return filter.Apply(items,
		filter.FreeText[model.Venda](st.Search),
		filter.EnumEquals(st.Enum(FilterStatus), func(v model.Venda) string { return string(v.Status) }),
	)
}

// ClienteSort orders customers by id or name.
func ClienteSort(items []model.Cliente, field, dir string) []model.Cliente {
	return sortRecords(items, field, dir, func(c model.Cliente) string { return c.Nome })
}

// ProdutoSort orders products by id or name.
func ProdutoSort(items []model.Produto, field, dir string) []model.Produto {
	return sortRecords(items, field, dir, func(p model.Produto) string { return p.Nome })
}

// VendaSort orders sales by id or customer name.
func VendaSort(items []model.Venda, field, dir string) []model.Venda {
	return sortRecords(items, field, dir, func(v model.Venda) string { return v.Cliente })
}

// UsuarioSort orders users by id or name.
func UsuarioSort(items []model.Usuario, field, dir string) []model.Usuario {
	return sortRecords(items, field, dir, func(u model.Usuario) string { return u.Nome })
}

// UsuarioFilter applies the user page's predicate set.
func UsuarioFilter(items []model.Usuario, st filter.State) []model.Usuario {
	return filter.Apply(items,
		filter.FreeText[model.Usuario](st.Search),
		filter.EnumEquals(st.Enum(FilterStatus), func(u model.Usuario) string { return string(u.Status) }),
		filter.EnumEquals(st.Enum(FilterPerfil), func(u model.Usuario) string { return u.Perfil }),
	)
}

// Deps are the shared collaborators every page needs.
type Deps struct {
	Client  *api.Client
	Prefs   *store.Prefs
	Confirm controller.Confirmer
}

// NewClientesPage builds the customer list controller.
func NewClientesPage(deps Deps) (*controller.Controller[model.Cliente], error) {
	return controller.New(controller.Config[model.Cliente]{
		Resource:  ResourceClientes,
		Client:    deps.Client,
		Presenter: render.ClientePresenter{},
		Filter:    ClienteFilter,
		Sort:      ClienteSort,
		Confirm:   deps.Confirm,
		Prefs:     deps.Prefs,
	})
}

// NewProdutosPage builds the product list controller.
func NewProdutosPage(deps Deps) (*controller.Controller[model.Produto], error) {
	return controller.New(controller.Config[model.Produto]{
		Resource:  ResourceProdutos,
		Client:    deps.Client,
		Presenter: render.ProdutoPresenter{},
		Filter:    ProdutoFilter,
		Sort:      ProdutoSort,
		Confirm:   deps.Confirm,
		Prefs:     deps.Prefs,
	})
}

// NewVendasPage builds the sales list controller.
func NewVendasPage(deps Deps) (*controller.Controller[model.Venda], error) {
	return controller.New(controller.Config[model.Venda]{
		Resource:  ResourceVendas,
		Client:    deps.Client,
		Presenter: render.VendaPresenter{},
		Filter:    VendaFilter,
		Sort:      VendaSort,
		Confirm:   deps.Confirm,
		Prefs:     deps.Prefs,
	})
}

// NewUsuariosPage builds the user list controller.
func NewUsuariosPage(deps Deps) (*controller.Controller[model.Usuario], error) {
	return controller.New(controller.Config[model.Usuario]{
		Resource:  ResourceUsuarios,
		Client:    deps.Client,
		Presenter: render.UsuarioPresenter{},
		Filter:    UsuarioFilter,
		Sort:      UsuarioSort,
		Confirm:   deps.Confirm,
		Prefs:     deps.Prefs,
	})
}
