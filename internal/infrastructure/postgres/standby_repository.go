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

var _ repository.StandbyRepository = (*StandbyRepo)(nil)

// StandbyRepo implementação de StandbyRepository sobre o PostgreSQL de uma loja.
type StandbyRepo struct {
	q    Querier
	loja entity.Loja
}

// NewStandbyRepository constrói o adapter. Aceita pool ou tx (Querier).
func NewStandbyRepository(q Querier, loja entity.Loja) *StandbyRepo {
	return &StandbyRepo{q: q, loja: loja}
}

const standbyColunas = `id, vendedor_nome, cliente_nome, cliente_telefone, COALESCE(cliente_cpf, ''),
		COALESCE(cliente_cidade, ''), COALESCE(onde_conheceu, ''), carrinho, valor_total, COALESCE(observacoes, ''), created_at`

// Create persiste uma entrada na fila de espera.
func (r *StandbyRepo) Create(ctx context.Context, venda *entity.VendaStandby) (string, error) {
	query := `
		INSERT INTO vendas_standby (id, vendedor_nome, cliente_nome, cliente_telefone, cliente_cpf,
			cliente_cidade, onde_conheceu, carrinho, valor_total, observacoes, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		venda.ID, venda.VendedorNome, venda.ClienteNome, venda.ClienteTelefone, venda.ClienteCPF,
		venda.ClienteCidade, venda.OndeConheceu, venda.Carrinho, venda.ValorTotal,
		venda.Observacoes, venda.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert standby: %w", err)
	}
	return venda.ID, nil
}

// GetByID obtém uma entrada por ID. Devolve nil sem erro quando não existe.
func (r *StandbyRepo) GetByID(ctx context.Context, id string) (*entity.VendaStandby, error) {
	query := `SELECT ` + standbyColunas + ` FROM vendas_standby WHERE id = $1`
	v := entity.VendaStandby{Loja: r.loja}
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.VendedorNome, &v.ClienteNome, &v.ClienteTelefone, &v.ClienteCPF,
		&v.ClienteCidade, &v.OndeConheceu, &v.Carrinho, &v.ValorTotal, &v.Observacoes, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get standby: %w", err)
	}
	return &v, nil
}

// Delete remove a entrada; domain.ErrNotFound se já não existir.
func (r *StandbyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM vendas_standby WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete standby: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devolve as entradas mais recentes primeiro. SomenteOnline filtra pela
// convenção de observações do canal online ou pelo nome do vendedor do canal.
func (r *StandbyRepo) List(ctx context.Context, filtro repository.FiltroStandby) ([]*entity.VendaStandby, error) {
	query := `SELECT ` + standbyColunas + ` FROM vendas_standby WHERE 1=1`
	var args []any
	if filtro.VendedorNome != "" {
		args = append(args, filtro.VendedorNome)
		query += fmt.Sprintf(" AND vendedor_nome = $%d", len(args))
	}
	if filtro.SomenteOnline {
		query += ` AND (observacoes LIKE '%` + entity.ObsVendaOnline + `%'
			OR observacoes LIKE '%` + entity.ObsSeparadorPendente + `%'
			OR lower(vendedor_nome) LIKE '%online%')`
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list standby: %w", err)
	}
	defer rows.Close()
	var list []*entity.VendaStandby
	for rows.Next() {
		v := entity.VendaStandby{Loja: r.loja}
		if err := rows.Scan(&v.ID, &v.VendedorNome, &v.ClienteNome, &v.ClienteTelefone, &v.ClienteCPF,
			&v.ClienteCidade, &v.OndeConheceu, &v.Carrinho, &v.ValorTotal, &v.Observacoes, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan standby: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// FindByTelefoneOutroVendedor localiza uma entrada aberta com o mesmo telefone
// criada por outro vendedor. Devolve nil sem erro se não houver.
func (r *StandbyRepo) FindByTelefoneOutroVendedor(ctx context.Context, telefone, vendedorNome string) (*entity.VendaStandby, error) {
	query := `SELECT ` + standbyColunas + `
		FROM vendas_standby
		WHERE cliente_telefone = $1 AND vendedor_nome <> $2
		ORDER BY created_at DESC
		LIMIT 1`
	v := entity.VendaStandby{Loja: r.loja}
	err := r.q.QueryRow(ctx, query, telefone, vendedorNome).Scan(
		&v.ID, &v.VendedorNome, &v.ClienteNome, &v.ClienteTelefone, &v.ClienteCPF,
		&v.ClienteCidade, &v.OndeConheceu, &v.Carrinho, &v.ValorTotal, &v.Observacoes, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find standby por telefone: %w", err)
	}
	return &v, nil
}
