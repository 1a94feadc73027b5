package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// FinalizarSeparacaoRequest body para POST /api/separacao/:loja/:id/finalizar.
type FinalizarSeparacaoRequest struct {
	SeparadorNome string `json:"separador_nome"`
}

// RepetirFinalizacaoRequest body para POST /api/vendas/repetir.
// NumeroVenda é a chave de idempotência devolvida na falha parcial.
type RepetirFinalizacaoRequest struct {
	Loja          string `json:"loja"`
	StandbyID     string `json:"standby_id"`
	NumeroVenda   string `json:"numero_venda"`
	SeparadorNome string `json:"separador_nome,omitempty"` // exigido para números SEP-
}

// VendaResponse venda registrada no ledger.
type VendaResponse struct {
	ID              string          `json:"id"`
	Loja            string          `json:"loja"`
	NumeroVenda     string          `json:"numero_venda"`
	VendedorNome    string          `json:"vendedor_nome"`
	ClienteNome     string          `json:"cliente_nome"`
	ClienteTelefone string          `json:"cliente_telefone,omitempty"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	ValorFinal      decimal.Decimal `json:"valor_final"`
	FormaPagamento  string          `json:"forma_pagamento"`
	Status          string          `json:"status"`
	Observacoes     string          `json:"observacoes,omitempty"`
	DataVenda       time.Time       `json:"data_venda"`
}

// FromVenda converte a entidade para o contrato da API.
func FromVenda(v *entity.Venda) VendaResponse {
	return VendaResponse{
		ID:              v.ID,
		Loja:            string(v.Loja),
		NumeroVenda:     v.NumeroVenda,
		VendedorNome:    v.VendedorNome,
		ClienteNome:     v.ClienteNome,
		ClienteTelefone: v.ClienteTelefone,
		ValorTotal:      v.ValorTotal,
		ValorFinal:      v.ValorFinal,
		FormaPagamento:  v.FormaPagamento,
		Status:          v.Status,
		Observacoes:     v.Observacoes,
		DataVenda:       v.DataVenda,
	}
}

// FromVendaList converte uma lista de vendas.
func FromVendaList(list []*entity.Venda) []VendaResponse {
	out := make([]VendaResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromVenda(v))
	}
	return out
}

// ClienteResponse cadastro de cliente em respostas (pré-preenchimento do formulário).
type ClienteResponse struct {
	ID           string `json:"id"`
	Loja         string `json:"loja"`
	NomeCompleto string `json:"nome_completo"`
	Telefone     string `json:"telefone"`
	CPF          string `json:"cpf,omitempty"`
	Cidade       string `json:"cidade,omitempty"`
	Endereco     string `json:"endereco,omitempty"`
	OndeConheceu string `json:"onde_conheceu,omitempty"`
}

// FromCliente converte a entidade para o contrato da API.
func FromCliente(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:           c.ID,
		Loja:         string(c.Loja),
		NomeCompleto: c.NomeCompleto,
		Telefone:     c.Telefone,
		CPF:          c.CPF,
		Cidade:       c.Cidade,
		Endereco:     c.Endereco,
		OndeConheceu: c.OndeConheceu,
	}
}
