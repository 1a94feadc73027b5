package repository

import (
	"context"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// MovimentoEstoqueRepository porta de leitura da trilha de auditoria de
// estoque. A gravação acontece junto com a baixa, em
// ProdutoRepository.BaixarEstoque.
type MovimentoEstoqueRepository interface {
	// ListByVenda devolve os movimentos já gravados para uma venda
	// (reconciliação de falha parcial).
	ListByVenda(ctx context.Context, vendaID string) ([]*entity.MovimentoEstoque, error)
}
