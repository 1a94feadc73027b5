package repository

import (
	"context"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// ProdutoRepository porta de persistência do catálogo de uma loja.
type ProdutoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Produto, error)
	// GetByCodigo resolve o código lido do produto (entrada opaca do scanner).
	// Devolve nil sem erro quando não existe.
	GetByCodigo(ctx context.Context, codigo string) (*entity.Produto, error)
	// ListAtivos devolve os produtos ativos da loja, ordenados por nome.
	ListAtivos(ctx context.Context) ([]*entity.Produto, error)
	// BaixarEstoque aplica a baixa condicional e grava o movimento de
	// auditoria como uma única operação na loja: ou os dois acontecem, ou
	// nenhum. A baixa só ocorre se o estoque não ficar negativo
	// (domain.ErrEstoqueInsuficiente sem alterar nada). Idempotente por
	// (VendaID, ProdutoID): uma baixa já auditada para a mesma venda não é
	// aplicada de novo. A quantidade vem de mov.QuantidadeMovimentada
	// (negativa); QuantidadeAnterior e QuantidadeAtual são preenchidos.
	BaixarEstoque(ctx context.Context, mov *entity.MovimentoEstoque) error
}
