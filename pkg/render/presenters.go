package render

import (
	"strconv"

	"github.com/gestorpme/erp-client/pkg/model"
)

// placeholderAvatar is used when a user record has no avatar URL or the
// optional avatar load failed. The failure is never surfaced as an error.
const placeholderAvatar = "/assets/avatar-placeholder.png"

// ClientePresenter renders customer records.
type ClientePresenter struct{}

func (ClientePresenter) Columns() []string {
	return []string{"Nome", "E-mail", "Telefone", "CPF/CNPJ", "Status"}
}

func (ClientePresenter) Row(c model.Cliente) Row {
	return Row{
		ID: c.ID,
		Cells: []Cell{
			{Text: c.Nome, Escape: true},
			{Text: c.Email, Escape: true},
			{Text: c.Telefone, Escape: true},
			{Text: c.Documento, Escape: true},
			{Text: string(c.Status)},
		},
	}
}

func (ClientePresenter) Card(c model.Cliente) Card {
	return Card{
		ID:       c.ID,
		Title:    c.Nome,
		Subtitle: c.Email,
		Badge:    statusBadge(c.Status),
		Fields: []Field{
			{Label: "Telefone", Value: c.Telefone, Escape: true},
			{Label: "CPF/CNPJ", Value: c.Documento, Escape: true},
			{Label: "Cliente desde", Value: FormatDate(c.CriadoEm), Escape: true},
		},
	}
}

// ProdutoPresenter renders product records with stock badges.
type ProdutoPresenter struct{}

func (ProdutoPresenter) Columns() []string {
	return []string{"Produto", "Categoria", "Preço", "Estoque", "Status"}
}

func (ProdutoPresenter) Row(p model.Produto) Row {
	return Row{
		ID: p.ID,
		Cells: []Cell{
			{Text: p.Nome, Escape: true},
			{Text: p.Categoria, Escape: true},
			{Text: FormatBRL(p.Preco)},
			{Text: strconv.Itoa(p.Estoque)},
			{Text: string(p.Status)},
		},
	}
}

func (ProdutoPresenter) Card(p model.Produto) Card {
	return Card{
		ID:       p.ID,
		Title:    p.Nome,
		Subtitle: p.Categoria,
		Badge:    string(p.StockLevel()),
		Fields: []Field{
			{Label: "Descrição", Value: p.Descricao, Escape: true},
			{Label: "Preço", Value: FormatBRL(p.Preco)},
			{Label: "Estoque", Value: strconv.Itoa(p.Estoque)},
		},
	}
}

// VendaPresenter renders sale records.
type VendaPresenter struct{}

func (VendaPresenter) Columns() []string {
	return []string{"Cliente", "Data", "Total", "Status"}
}

func (VendaPresenter) Row(v model.Venda) Row {
	return Row{
		ID: v.ID,
		Cells: []Cell{
			{Text: v.Cliente, Escape: true},
			{Text: FormatDate(v.Data)},
			{Text: FormatBRL(v.Total)},
			{Text: string(v.Status)},
		},
	}
}

func (VendaPresenter) Card(v model.Venda) Card {
	return Card{
		ID:       v.ID,
		Title:    v.Cliente,
		Subtitle: FormatDate(v.Data),
		Badge:    saleBadge(v.Status),
		Fields: []Field{
			{Label: "Total", Value: FormatBRL(v.Total)},
			{Label: "Observação", Value: v.Observacao, Escape: true},
		},
	}
}

// UsuarioPresenter renders dashboard user records.
type UsuarioPresenter struct{}

func (UsuarioPresenter) Columns() []string {
	return []string{"Nome", "E-mail", "Perfil", "Status"}
}

func (UsuarioPresenter) Row(u model.Usuario) Row {
	return Row{
		ID: u.ID,
		Cells: []Cell{
			{Text: u.Nome, Escape: true},
			{Text: u.Email, Escape: true},
			{Text: u.Perfil, Escape: true},
			{Text: string(u.Status)},
		},
	}
}

func (UsuarioPresenter) Card(u model.Usuario) Card {
	return Card{
		ID:       u.ID,
		Title:    u.Nome,
		Subtitle: u.Email,
		Badge:    statusBadge(u.Status),
		Fields: []Field{
			{Label: "Perfil", Value: u.Perfil, Escape: true},
			{Label: "Avatar", Value: AvatarURL(u), Escape: true},
		},
	}
}

// AvatarURL resolves the optional avatar, falling back to the placeholder.
func AvatarURL(u model.Usuario) string {
	if u.AvatarURL == "" {
		return placeholderAvatar
	}
	return u.AvatarURL
}

func statusBadge(s model.Status) string {
	if s == model.StatusAtivo {
		return "ativo"
	}
	return "inativo"
}

func saleBadge(s model.SaleStatus) string {
	switch s {
	case model.SalePago:
		return "pago"
	case model.SaleCancelado:
		return "cancelado"
	default:
		return "pendente"
	}
}
