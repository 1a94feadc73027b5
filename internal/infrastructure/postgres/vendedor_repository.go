package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

var _ repository.VendedorRepository = (*VendedorRepo)(nil)

// VendedorRepo leitura do cadastro de funcionários de uma loja.
type VendedorRepo struct {
	q    Querier
	loja entity.Loja
}

// NewVendedorRepository constrói o adapter. Aceita pool ou tx (Querier).
func NewVendedorRepository(q Querier, loja entity.Loja) *VendedorRepo {
	return &VendedorRepo{q: q, loja: loja}
}

// ListAtivos devolve os vendedores ativos da loja ordenados por nome.
func (r *VendedorRepo) ListAtivos(ctx context.Context) ([]*entity.Vendedor, error) {
	query := `
		SELECT id, nome, tipo, COALESCE(meta_mensal, 0), ativo
		FROM vendedores WHERE ativo = true ORDER BY nome`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vendedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendedor
	for rows.Next() {
		v := entity.Vendedor{Loja: r.loja}
		if err := rows.Scan(&v.ID, &v.Nome, &v.Tipo, &v.MetaMensal, &v.Ativo); err != nil {
			return nil, fmt.Errorf("scan vendedor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
