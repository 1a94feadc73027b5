// Package standby implementa a fila de espera durável: vendas enviadas
// pelo vendedor e ainda não registradas no ledger.
package standby

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pdv-multiloja/internal/application/roteamento"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
	"github.com/jhoicas/pdv-multiloja/pkg/logger"
)

// Fila casos de uso da fila de espera.
type Fila struct {
	lojas    repository.Lojas
	registro RegistroClientes
	rotas    roteamento.Estrategia
	log      *logger.Logger
}

// RegistroClientes é o que a fila precisa do cadastro de clientes.
type RegistroClientes interface {
	Upsert(ctx context.Context, loja entity.Loja, cliente *entity.Cliente) error
	VerificarConflito(ctx context.Context, telefone, vendedorNome string) (*entity.VendaStandby, error)
}

// NewFila constrói o caso de uso.
func NewFila(lojas repository.Lojas, registro RegistroClientes, rotas roteamento.Estrategia, log *logger.Logger) *Fila {
	return &Fila{lojas: lojas, registro: registro, rotas: rotas, log: log}
}

// Envio dados de um envio para standby.
type Envio struct {
	Loja            entity.Loja // loja do vendedor; "online" roteia a fila pela origem dos itens
	VendedorNome    string
	ClienteNome     string
	ClienteTelefone string
	ClienteCPF      string
	ClienteCidade   string
	ClienteEndereco string
	OndeConheceu    string
	TipoEnvio       string // canal online: "retirada" ou "entrega"
	Itens           []entity.ItemCarrinho
	Observacoes     string
}

// Enviar valida, cadastra o cliente e persiste a entrada na fila.
// Não toca estoque. Telefone já aberto por outro vendedor bloqueia o
// envio com ErrConflito.
func (f *Fila) Enviar(ctx context.Context, in Envio) (*entity.VendaStandby, error) {
	if len(in.Itens) == 0 {
		return nil, domain.ErrCarrinhoVazio
	}
	if in.ClienteNome == "" {
		return nil, domain.ErrValidacao
	}
	online := in.Loja == entity.LojaOnline
	if online && in.ClienteTelefone == "" {
		return nil, domain.ErrValidacao
	}
	if !online {
		// Balcão vende do catálogo da própria loja; uma linha de outra
		// loja não teria como baixar estoque na finalização direta.
		for _, it := range in.Itens {
			if it.LojaOrigem != in.Loja {
				return nil, domain.ErrValidacao
			}
		}
	}

	if in.ClienteTelefone != "" {
		aberta, err := f.registro.VerificarConflito(ctx, in.ClienteTelefone, in.VendedorNome)
		if err != nil {
			return nil, err
		}
		if aberta != nil {
			f.log.Warn().
				Str("telefone", in.ClienteTelefone).
				Str("vendedor", in.VendedorNome).
				Str("vendedor_em_aberto", aberta.VendedorNome).
				Msg("envio bloqueado: telefone já em atendimento")
			return nil, domain.ErrConflito
		}
	}

	// No canal online a fila dona do pedido é a loja resolvida pela
	// origem dos itens; no balcão é a própria loja do vendedor.
	lojaFila := in.Loja
	observacoes := in.Observacoes
	if online {
		lojaFila = f.rotas.ResolverDestino(in.Itens)
		observacoes = fmt.Sprintf("%s - Tipo: %s | Endereço: %s | %s | Loja: %s",
			entity.ObsVendaOnline, in.TipoEnvio, in.ClienteEndereco,
			entity.ObsSeparadorPendente, string(lojaFila))
	}
	adapter := f.lojas.Get(lojaFila)
	if adapter == nil {
		return nil, domain.ErrNotFound
	}

	if err := f.registro.Upsert(ctx, lojaFila, &entity.Cliente{
		NomeCompleto: in.ClienteNome,
		Telefone:     in.ClienteTelefone,
		CPF:          in.ClienteCPF,
		Cidade:       in.ClienteCidade,
		Endereco:     in.ClienteEndereco,
		OndeConheceu: in.OndeConheceu,
	}); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			return nil, domain.ErrConflito
		}
		return nil, fmt.Errorf("cadastrar cliente: %w", err)
	}

	raw, err := entity.SerializarCarrinho(in.Itens)
	if err != nil {
		return nil, fmt.Errorf("serializar carrinho: %w", err)
	}
	venda := &entity.VendaStandby{
		ID:              uuid.New().String(),
		Loja:            lojaFila,
		VendedorNome:    in.VendedorNome,
		ClienteNome:     in.ClienteNome,
		ClienteTelefone: in.ClienteTelefone,
		ClienteCPF:      in.ClienteCPF,
		ClienteCidade:   in.ClienteCidade,
		OndeConheceu:    in.OndeConheceu,
		Carrinho:        raw,
		ValorTotal:      entity.TotalCarrinho(in.Itens),
		Observacoes:     observacoes,
		CreatedAt:       time.Now(),
	}
	if _, err := adapter.Standby().Create(ctx, venda); err != nil {
		return nil, fmt.Errorf("gravar standby: %w", err)
	}
	f.log.Info().
		Str("standby_id", venda.ID).
		Str("loja", string(lojaFila)).
		Str("vendedor", in.VendedorNome).
		Msg("venda enviada para standby")
	return venda, nil
}

// Cancelar remove a entrada sem efeito em ledger ou estoque.
func (f *Fila) Cancelar(ctx context.Context, loja entity.Loja, id string) error {
	adapter := f.lojas.Get(loja)
	if adapter == nil {
		return domain.ErrNotFound
	}
	return adapter.Standby().Delete(ctx, id)
}

// Reeditar remove a entrada e devolve as linhas do carrinho para o
// vendedor retomar a edição. A entrada some da fila imediatamente.
func (f *Fila) Reeditar(ctx context.Context, loja entity.Loja, id string) (*entity.VendaStandby, []entity.ItemCarrinho, error) {
	adapter := f.lojas.Get(loja)
	if adapter == nil {
		return nil, nil, domain.ErrNotFound
	}
	venda, err := adapter.Standby().GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if venda == nil {
		return nil, nil, domain.ErrNotFound
	}
	itens, err := venda.Itens()
	if err != nil {
		return nil, nil, fmt.Errorf("carrinho gravado ilegível: %w", err)
	}
	if err := adapter.Standby().Delete(ctx, id); err != nil {
		return nil, nil, err
	}
	return venda, itens, nil
}

// Listar devolve a fila de uma loja.
func (f *Fila) Listar(ctx context.Context, loja entity.Loja, filtro repository.FiltroStandby) ([]*entity.VendaStandby, error) {
	adapter := f.lojas.Get(loja)
	if adapter == nil {
		return nil, domain.ErrNotFound
	}
	return adapter.Standby().List(ctx, filtro)
}

// ListarSeparacao junta os pedidos online pendentes das duas lojas,
// mais recentes primeiro (tela do separador).
func (f *Fila) ListarSeparacao(ctx context.Context) ([]*entity.VendaStandby, error) {
	var todos []*entity.VendaStandby
	for _, loja := range entity.LojasFisicas {
		pedidos, err := f.lojas.Get(loja).Standby().List(ctx, repository.FiltroStandby{SomenteOnline: true})
		if err != nil {
			return nil, fmt.Errorf("listar separação em %s: %w", loja, err)
		}
		todos = append(todos, pedidos...)
	}
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}
