package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

var _ repository.MovimentoEstoqueRepository = (*MovimentoRepo)(nil)

// MovimentoRepo leitura da trilha de auditoria de estoque. A gravação
// acontece em ProdutoRepo.BaixarEstoque, na mesma transação da baixa.
type MovimentoRepo struct {
	q    Querier
	loja entity.Loja
}

// NewMovimentoRepository constrói o adapter. Aceita pool ou tx (Querier).
func NewMovimentoRepository(q Querier, loja entity.Loja) *MovimentoRepo {
	return &MovimentoRepo{q: q, loja: loja}
}

// inserirMovimento grava um movimento de estoque pelo Querier dado
// (na prática, a transação aberta pela baixa).
func inserirMovimento(ctx context.Context, q Querier, mov *entity.MovimentoEstoque) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimentacoes_estoque (id, produto_id, tipo_movimentacao, quantidade_anterior,
			quantidade_movimentada, quantidade_atual, motivo, usuario_id, venda_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, now())`
	_, err := q.Exec(ctx, query,
		mov.ID, mov.ProdutoID, mov.TipoMovimentacao, mov.QuantidadeAnterior,
		mov.QuantidadeMovimentada, mov.QuantidadeAtual, mov.Motivo, mov.UsuarioID, mov.VendaID,
	)
	if err != nil {
		return fmt.Errorf("insert movimento: %w", err)
	}
	return nil
}

// ListByVenda devolve os movimentos já gravados para uma venda.
func (r *MovimentoRepo) ListByVenda(ctx context.Context, vendaID string) ([]*entity.MovimentoEstoque, error) {
	query := `
		SELECT id, produto_id, tipo_movimentacao, quantidade_anterior, quantidade_movimentada,
			quantidade_atual, motivo, COALESCE(usuario_id::text, ''), venda_id, created_at
		FROM movimentacoes_estoque WHERE venda_id = $1`
	rows, err := r.q.Query(ctx, query, vendaID)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimentoEstoque
	for rows.Next() {
		m := entity.MovimentoEstoque{Loja: r.loja}
		if err := rows.Scan(&m.ID, &m.ProdutoID, &m.TipoMovimentacao, &m.QuantidadeAnterior,
			&m.QuantidadeMovimentada, &m.QuantidadeAtual, &m.Motivo, &m.UsuarioID, &m.VendaID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
