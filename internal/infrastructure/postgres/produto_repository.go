package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação de ProdutoRepository sobre o PostgreSQL de uma loja.
// Recebe um DB (e não um Querier) porque a baixa de estoque abre uma
// transação local para gravar a auditoria junto.
type ProdutoRepo struct {
	db   DB
	loja entity.Loja
}

// NewProdutoRepository constrói o adapter.
func NewProdutoRepository(db DB, loja entity.Loja) *ProdutoRepo {
	return &ProdutoRepo{db: db, loja: loja}
}

// GetByID obtém um produto por ID.
func (r *ProdutoRepo) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	query := `
		SELECT id, codigo, nome, tipo, cor, tamanho, preco_venda, estoque_atual, ativo, created_at, updated_at
		FROM produtos WHERE id = $1`
	p := entity.Produto{Loja: r.loja}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Codigo, &p.Nome, &p.Tipo, &p.Cor, &p.Tamanho,
		&p.PrecoVenda, &p.EstoqueAtual, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}

// GetByCodigo resolve o código lido do produto. Devolve nil sem erro quando não existe.
func (r *ProdutoRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Produto, error) {
	query := `
		SELECT id, codigo, nome, tipo, cor, tamanho, preco_venda, estoque_atual, ativo, created_at, updated_at
		FROM produtos WHERE codigo = $1`
	p := entity.Produto{Loja: r.loja}
	err := r.db.QueryRow(ctx, query, codigo).Scan(
		&p.ID, &p.Codigo, &p.Nome, &p.Tipo, &p.Cor, &p.Tamanho,
		&p.PrecoVenda, &p.EstoqueAtual, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto por codigo: %w", err)
	}
	return &p, nil
}

// ListAtivos lista os produtos ativos da loja ordenados por nome.
func (r *ProdutoRepo) ListAtivos(ctx context.Context) ([]*entity.Produto, error) {
	query := `
		SELECT id, codigo, nome, tipo, cor, tamanho, preco_venda, estoque_atual, ativo, created_at, updated_at
		FROM produtos WHERE ativo = true ORDER BY nome`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produto
	for rows.Next() {
		p := entity.Produto{Loja: r.loja}
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Nome, &p.Tipo, &p.Cor, &p.Tamanho,
			&p.PrecoVenda, &p.EstoqueAtual, &p.Ativo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// BaixarEstoque aplica a baixa condicional e grava o movimento de
// auditoria na mesma transação: uma baixa sem trilha (ou uma trilha sem
// baixa) nunca fica visível, mesmo que a conexão caia no meio.
//
// O UPDATE condicional garante que o estoque nunca fica negativo com
// baixas concorrentes (não há janela entre leitura e gravação), e o
// índice único de movimentacoes_estoque em (venda_id, produto_id) torna
// a operação idempotente: a repetição de uma baixa já auditada não é
// aplicada, e duas repetições concorrentes resolvem pela restrição.
func (r *ProdutoRepo) BaixarEstoque(ctx context.Context, mov *entity.MovimentoEstoque) error {
	qtd := -mov.QuantidadeMovimentada
	if qtd <= 0 || mov.ProdutoID == "" || mov.VendaID == "" {
		return domain.ErrValidacao
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("abrir transação de baixa: %w", err)
	}
	defer tx.Rollback(ctx)

	// Já auditada para esta venda? A baixa já aconteceu numa tentativa anterior.
	var auditada bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movimentacoes_estoque WHERE venda_id = $1 AND produto_id = $2)`,
		mov.VendaID, mov.ProdutoID).Scan(&auditada); err != nil {
		return fmt.Errorf("verificar movimento: %w", err)
	}
	if auditada {
		return nil
	}

	query := `
		UPDATE produtos
		SET estoque_atual = estoque_atual - $2, updated_at = now()
		WHERE id = $1 AND estoque_atual >= $2
		RETURNING estoque_atual`
	var atual int
	err = tx.QueryRow(ctx, query, mov.ProdutoID, qtd).Scan(&atual)
	if errors.Is(err, pgx.ErrNoRows) {
		// Nenhuma linha: produto inexistente ou estoque insuficiente.
		var existe bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM produtos WHERE id = $1)`, mov.ProdutoID).Scan(&existe); err != nil {
			return fmt.Errorf("verificar produto: %w", err)
		}
		if !existe {
			return domain.ErrNotFound
		}
		return domain.ErrEstoqueInsuficiente
	}
	if err != nil {
		return fmt.Errorf("baixar estoque: %w", err)
	}

	mov.QuantidadeAnterior = atual + qtd
	mov.QuantidadeAtual = atual
	if err := inserirMovimento(ctx, tx, mov); err != nil {
		if isUniqueViolation(err) {
			// Outra repetição ganhou a corrida; o rollback desfaz esta baixa.
			return nil
		}
		return err
	}
	return tx.Commit(ctx)
}
