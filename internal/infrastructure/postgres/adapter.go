package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

var _ repository.LojaAdapter = (*Adapter)(nil)

// Adapter agrupa os repositórios de uma loja sobre o pool dela.
// Cada chamada de repositório é uma operação remota isolada: não há
// transação cruzando repositórios nem lojas. A única transação local é
// a da baixa de estoque, que grava a auditoria junto.
type Adapter struct {
	loja       entity.Loja
	produtos   *ProdutoRepo
	clientes   *ClienteRepo
	standby    *StandbyRepo
	vendas     *VendaRepo
	movimentos *MovimentoRepo
	vendedores *VendedorRepo
}

// NewLojaAdapter constrói o adapter da loja sobre o pool dedicado dela.
func NewLojaAdapter(loja entity.Loja, pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		loja:       loja,
		produtos:   NewProdutoRepository(pool, loja),
		clientes:   NewClienteRepository(pool, loja),
		standby:    NewStandbyRepository(pool, loja),
		vendas:     NewVendaRepository(pool, loja),
		movimentos: NewMovimentoRepository(pool, loja),
		vendedores: NewVendedorRepository(pool, loja),
	}
}

func (a *Adapter) Loja() entity.Loja                                 { return a.loja }
func (a *Adapter) Produtos() repository.ProdutoRepository            { return a.produtos }
func (a *Adapter) Clientes() repository.ClienteRepository            { return a.clientes }
func (a *Adapter) Standby() repository.StandbyRepository             { return a.standby }
func (a *Adapter) Vendas() repository.VendaRepository                { return a.vendas }
func (a *Adapter) Movimentos() repository.MovimentoEstoqueRepository { return a.movimentos }
func (a *Adapter) Vendedores() repository.VendedorRepository         { return a.vendedores }
