package repository

import (
	"context"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// VendedorRepository leitura do cadastro de funcionários de uma loja
// (mantido pelo subsistema de usuários; aqui é só consulta para o consolidado).
type VendedorRepository interface {
	ListAtivos(ctx context.Context) ([]*entity.Vendedor, error)
}
