// Package clientes concentra o cadastro de clientes por loja e a
// detecção de conflito de atendimento por telefone.
package clientes

import (
	"context"
	"fmt"

	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

// Registro diretório de clientes sobre os adapters das lojas físicas.
type Registro struct {
	lojas repository.Lojas
}

// NewRegistro constrói o registro.
func NewRegistro(lojas repository.Lojas) *Registro {
	return &Registro{lojas: lojas}
}

// BuscarPorTelefone procura o telefone na loja indicada. Para o canal
// online procura nas duas lojas físicas, na ordem canônica (pré-preenche
// o formulário com o cadastro que aparecer primeiro).
func (r *Registro) BuscarPorTelefone(ctx context.Context, loja entity.Loja, telefone string) (*entity.Cliente, error) {
	if telefone == "" {
		return nil, nil
	}
	if loja.Fisica() {
		adapter := r.lojas.Get(loja)
		if adapter == nil {
			return nil, domain.ErrNotFound
		}
		return adapter.Clientes().GetByTelefone(ctx, telefone)
	}
	for _, fisica := range entity.LojasFisicas {
		cliente, err := r.lojas.Get(fisica).Clientes().GetByTelefone(ctx, telefone)
		if err != nil {
			return nil, fmt.Errorf("buscar cliente em %s: %w", fisica, err)
		}
		if cliente != nil {
			return cliente, nil
		}
	}
	return nil, nil
}

// Upsert insere ou atualiza o cliente na loja, deduplicando por telefone.
func (r *Registro) Upsert(ctx context.Context, loja entity.Loja, cliente *entity.Cliente) error {
	if cliente == nil || cliente.NomeCompleto == "" {
		return domain.ErrValidacao
	}
	adapter := r.lojas.Get(loja)
	if adapter == nil {
		return domain.ErrNotFound
	}
	cliente.Loja = loja
	return adapter.Clientes().Upsert(ctx, cliente)
}

// VerificarConflito procura, nas filas de standby das duas lojas, uma
// entrada aberta com o mesmo telefone criada por outro vendedor.
//
// A checagem é consultiva: avaliada na digitação e novamente no envio,
// mas sem atomicidade com o Create do standby — dois envios simultâneos
// ainda podem passar (janela de corrida documentada).
func (r *Registro) VerificarConflito(ctx context.Context, telefone, vendedorNome string) (*entity.VendaStandby, error) {
	if len(telefone) < 10 {
		return nil, nil
	}
	for _, fisica := range entity.LojasFisicas {
		aberta, err := r.lojas.Get(fisica).Standby().FindByTelefoneOutroVendedor(ctx, telefone, vendedorNome)
		if err != nil {
			return nil, fmt.Errorf("verificar conflito em %s: %w", fisica, err)
		}
		if aberta != nil {
			return aberta, nil
		}
	}
	return nil, nil
}
