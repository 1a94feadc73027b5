package repository

import (
	"context"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// FiltroStandby filtros da listagem da fila de espera.
type FiltroStandby struct {
	VendedorNome  string // apenas entradas deste vendedor
	SomenteOnline bool   // apenas pedidos do canal online (convenção de observações)
}

// StandbyRepository porta da fila de espera durável de uma loja.
type StandbyRepository interface {
	Create(ctx context.Context, venda *entity.VendaStandby) (string, error)
	GetByID(ctx context.Context, id string) (*entity.VendaStandby, error)
	// Delete remove a entrada; domain.ErrNotFound se já não existir.
	Delete(ctx context.Context, id string) error
	// List devolve as entradas mais recentes primeiro.
	List(ctx context.Context, filtro FiltroStandby) ([]*entity.VendaStandby, error)
	// FindByTelefoneOutroVendedor localiza uma entrada aberta com o mesmo
	// telefone criada por outro vendedor. Devolve nil sem erro se não houver.
	FindByTelefoneOutroVendedor(ctx context.Context, telefone, vendedorNome string) (*entity.VendaStandby, error)
}
