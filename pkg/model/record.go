// Package model defines the ERP record types shared by the collection engine.
package model

import "strconv"

// Status is the closed activity enum shared by clients, products and users.
type Status string

const (
	// StatusAtivo marks an active record.
	StatusAtivo Status = "Ativo"

	// StatusInativo marks an inactive record.
	StatusInativo Status = "Inativo"
)

// SaleStatus is the closed enum for sale records.
type SaleStatus string

const (
	SalePendente  SaleStatus = "Pendente"
	SalePago      SaleStatus = "Pago"
	SaleCancelado SaleStatus = "Cancelado"
)

// Record is implemented by every entity the engine can list.
// SearchFields returns the free-text searchable string fields; the
// stringified ID is matched separately by the filter engine.
type Record interface {
	RecordID() int64
	SearchFields() []string
}

// Cliente is a customer record.
type Cliente struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telefone  string `json:"telefone"`
	Documento string `json:"cpf_cnpj"`
	Cidade    string `json:"cidade"`
	Status    Status `json:"status"`
	CriadoEm  string `json:"criado_em"`
}

func (c Cliente) RecordID() int64 { return c.ID }

func (c Cliente) SearchFields() []string {
	return []string{c.Nome, c.Email, c.Telefone, c.Documento}
}

// Produto is a product record with stock tracking.
type Produto struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome" validate:"required"`
	Descricao string  `json:"descricao"`
	Categoria string  `json:"categoria"`
	Preco     float64 `json:"preco" validate:"gte=0"`
	Estoque   int     `json:"estoque" validate:"gte=0"`
	Status    Status  `json:"status"`
}

func (p Produto) RecordID() int64 { return p.ID }

func (p Produto) SearchFields() []string {
	return []string{p.Nome, p.Descricao, p.Categoria}
}

// Venda is a sale record. Total is computed server-side, which is why
// mutations always trigger a full re-fetch instead of patching in place.
type Venda struct {
	ID         int64      `json:"id"`
	ClienteID  int64      `json:"cliente_id" validate:"required"`
	Cliente    string     `json:"cliente"`
	Total      float64    `json:"total"`
	Status     SaleStatus `json:"status"`
	Data       string     `json:"data"`
	Observacao string     `json:"observacao"`
}

func (v Venda) RecordID() int64 { return v.ID }

func (v Venda) SearchFields() []string {
	return []string{v.Cliente, v.Observacao}
}

// Usuario is a dashboard user record.
type Usuario struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telefone  string `json:"telefone"`
	Perfil    string `json:"perfil"`
	AvatarURL string `json:"avatar_url"`
	Status    Status `json:"status"`
}

func (u Usuario) RecordID() int64 { return u.ID }

func (u Usuario) SearchFields() []string {
	return []string{u.Nome, u.Email, u.Telefone, u.Perfil}
}

// FormatID renders a record id the way the search predicate matches it.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
