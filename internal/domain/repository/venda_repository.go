package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// FiltroVendas filtros da leitura do ledger.
type FiltroVendas struct {
	Inicio            time.Time
	Fim               time.Time
	VendedorNome      string
	ObservacoesLike   string // busca em observações (histórico do separador)
	ExcluirPendentes  bool   // fora forma_pagamento = pendente_caixa
	ExcluirCanceladas bool   // fora status = cancelada
}

// VendaRepository porta do ledger de vendas de uma loja.
type VendaRepository interface {
	// Create insere a venda; número duplicado resulta em domain.ErrDuplicado.
	Create(ctx context.Context, venda *entity.Venda) error
	// GetByNumero devolve nil sem erro quando o número não existe.
	// Usado na repetição idempotente da finalização.
	GetByNumero(ctx context.Context, numero string) (*entity.Venda, error)
	CreateItens(ctx context.Context, itens []*entity.ItemVenda) error
	// ListItens devolve as linhas de uma venda (retomada de falha parcial).
	ListItens(ctx context.Context, vendaID string) ([]*entity.ItemVenda, error)
	// List devolve vendas do período, mais recentes primeiro.
	List(ctx context.Context, filtro FiltroVendas) ([]*entity.Venda, error)
}
