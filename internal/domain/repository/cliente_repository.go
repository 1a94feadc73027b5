package repository

import (
	"context"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// ClienteRepository porta do cadastro de clientes de uma loja.
type ClienteRepository interface {
	// GetByTelefone devolve nil sem erro quando o telefone não existe.
	GetByTelefone(ctx context.Context, telefone string) (*entity.Cliente, error)
	// Upsert insere ou atualiza pelo telefone (chave de deduplicação).
	// CPF duplicado em outro cliente da loja resulta em domain.ErrDuplicado.
	Upsert(ctx context.Context, cliente *entity.Cliente) error
}
