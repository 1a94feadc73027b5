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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação de ClienteRepository sobre o PostgreSQL de uma loja.
type ClienteRepo struct {
	q    Querier
	loja entity.Loja
}

// NewClienteRepository constrói o adapter. Aceita pool ou tx (Querier).
func NewClienteRepository(q Querier, loja entity.Loja) *ClienteRepo {
	return &ClienteRepo{q: q, loja: loja}
}

// GetByTelefone obtém um cliente pelo telefone. Devolve nil sem erro quando não existe.
func (r *ClienteRepo) GetByTelefone(ctx context.Context, telefone string) (*entity.Cliente, error) {
	query := `
		SELECT id, nome_completo, telefone, COALESCE(cpf, ''), cidade, endereco, onde_conheceu, created_at, updated_at
		FROM clientes WHERE telefone = $1`
	c := entity.Cliente{Loja: r.loja}
	err := r.q.QueryRow(ctx, query, telefone).Scan(
		&c.ID, &c.NomeCompleto, &c.Telefone, &c.CPF, &c.Cidade, &c.Endereco,
		&c.OndeConheceu, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Upsert insere ou atualiza pelo telefone (chave de deduplicação). Campos
// vazios não sobrescrevem valores já cadastrados. CPF duplicado em outro
// cliente resulta em domain.ErrDuplicado.
func (r *ClienteRepo) Upsert(ctx context.Context, cliente *entity.Cliente) error {
	if cliente.ID == "" {
		cliente.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clientes (id, nome_completo, telefone, cpf, cidade, endereco, onde_conheceu, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, now(), now())
		ON CONFLICT (telefone) DO UPDATE SET
			nome_completo = EXCLUDED.nome_completo,
			cpf           = COALESCE(EXCLUDED.cpf, clientes.cpf),
			cidade        = CASE WHEN EXCLUDED.cidade <> '' THEN EXCLUDED.cidade ELSE clientes.cidade END,
			endereco      = CASE WHEN EXCLUDED.endereco <> '' THEN EXCLUDED.endereco ELSE clientes.endereco END,
			onde_conheceu = CASE WHEN EXCLUDED.onde_conheceu <> '' THEN EXCLUDED.onde_conheceu ELSE clientes.onde_conheceu END,
			updated_at    = now()`
	_, err := r.q.Exec(ctx, query,
		cliente.ID, cliente.NomeCompleto, cliente.Telefone, cliente.CPF,
		cliente.Cidade, cliente.Endereco, cliente.OndeConheceu,
	)
	if err != nil {
		// Conflito no índice único de CPF, não no de telefone.
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("upsert cliente: %w", err)
	}
	return nil
}
