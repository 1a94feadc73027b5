package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

var _ repository.VendaRepository = (*VendaRepo)(nil)

// VendaRepo implementação de VendaRepository sobre o PostgreSQL de uma loja.
type VendaRepo struct {
	q    Querier
	loja entity.Loja
}

// NewVendaRepository constrói o adapter. Aceita pool ou tx (Querier).
func NewVendaRepository(q Querier, loja entity.Loja) *VendaRepo {
	return &VendaRepo{q: q, loja: loja}
}

const vendaColunas = `id, numero_venda, vendedor_nome, cliente_nome, COALESCE(cliente_telefone, ''),
		valor_total, valor_final, forma_pagamento, status, COALESCE(observacoes, ''), data_venda`

// Create insere a venda no ledger. Número duplicado (índice único de
// numero_venda) resulta em domain.ErrDuplicado — é o sinal de retomada
// da finalização idempotente.
func (r *VendaRepo) Create(ctx context.Context, venda *entity.Venda) error {
	if venda.ID == "" {
		venda.ID = uuid.New().String()
	}
	query := `
		INSERT INTO vendas (id, numero_venda, vendedor_nome, cliente_nome, cliente_telefone,
			valor_total, valor_final, forma_pagamento, status, observacoes, data_venda)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		venda.ID, venda.NumeroVenda, venda.VendedorNome, venda.ClienteNome, venda.ClienteTelefone,
		venda.ValorTotal, venda.ValorFinal, venda.FormaPagamento, venda.Status,
		venda.Observacoes, venda.DataVenda,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert venda: %w", err)
	}
	return nil
}

// GetByNumero devolve nil sem erro quando o número não existe.
func (r *VendaRepo) GetByNumero(ctx context.Context, numero string) (*entity.Venda, error) {
	query := `SELECT ` + vendaColunas + ` FROM vendas WHERE numero_venda = $1`
	v := entity.Venda{Loja: r.loja}
	err := r.q.QueryRow(ctx, query, numero).Scan(
		&v.ID, &v.NumeroVenda, &v.VendedorNome, &v.ClienteNome, &v.ClienteTelefone,
		&v.ValorTotal, &v.ValorFinal, &v.FormaPagamento, &v.Status, &v.Observacoes, &v.DataVenda,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venda: %w", err)
	}
	return &v, nil
}

// CreateItens insere as linhas da venda em lote.
func (r *VendaRepo) CreateItens(ctx context.Context, itens []*entity.ItemVenda) error {
	query := `
		INSERT INTO itens_venda (id, venda_id, produto_id, produto_codigo, produto_nome, quantidade, preco_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range itens {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if _, err := r.q.Exec(ctx, query,
			item.ID, item.VendaID, item.ProdutoID, item.ProdutoCodigo, item.ProdutoNome,
			item.Quantidade, item.PrecoUnitario, item.Subtotal,
		); err != nil {
			return fmt.Errorf("insert item venda: %w", err)
		}
	}
	return nil
}

// ListItens devolve as linhas de uma venda.
func (r *VendaRepo) ListItens(ctx context.Context, vendaID string) ([]*entity.ItemVenda, error) {
	query := `
		SELECT id, venda_id, produto_id, produto_codigo, produto_nome, quantidade, preco_unitario, subtotal
		FROM itens_venda WHERE venda_id = $1`
	rows, err := r.q.Query(ctx, query, vendaID)
	if err != nil {
		return nil, fmt.Errorf("list itens venda: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemVenda
	for rows.Next() {
		var item entity.ItemVenda
		if err := rows.Scan(&item.ID, &item.VendaID, &item.ProdutoID, &item.ProdutoCodigo,
			&item.ProdutoNome, &item.Quantidade, &item.PrecoUnitario, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan item venda: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List devolve as vendas do período, mais recentes primeiro.
func (r *VendaRepo) List(ctx context.Context, filtro repository.FiltroVendas) ([]*entity.Venda, error) {
	query := `SELECT ` + vendaColunas + ` FROM vendas WHERE 1=1`
	var args []any
	if !filtro.Inicio.IsZero() {
		args = append(args, filtro.Inicio)
		query += fmt.Sprintf(" AND data_venda >= $%d", len(args))
	}
	if !filtro.Fim.IsZero() {
		args = append(args, filtro.Fim)
		query += fmt.Sprintf(" AND data_venda <= $%d", len(args))
	}
	if filtro.VendedorNome != "" {
		args = append(args, filtro.VendedorNome)
		query += fmt.Sprintf(" AND vendedor_nome = $%d", len(args))
	}
	if filtro.ObservacoesLike != "" {
		args = append(args, "%"+filtro.ObservacoesLike+"%")
		query += fmt.Sprintf(" AND observacoes LIKE $%d", len(args))
	}
	if filtro.ExcluirPendentes {
		args = append(args, entity.FormaPagamentoPendenteCaixa)
		query += fmt.Sprintf(" AND forma_pagamento <> $%d", len(args))
	}
	if filtro.ExcluirCanceladas {
		args = append(args, entity.StatusVendaCancelada)
		query += fmt.Sprintf(" AND status <> $%d", len(args))
	}
	query += " ORDER BY data_venda DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venda
	for rows.Next() {
		v := entity.Venda{Loja: r.loja}
		if err := rows.Scan(&v.ID, &v.NumeroVenda, &v.VendedorNome, &v.ClienteNome, &v.ClienteTelefone,
			&v.ValorTotal, &v.ValorFinal, &v.FormaPagamento, &v.Status, &v.Observacoes, &v.DataVenda); err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
