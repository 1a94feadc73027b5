package repository

import "github.com/jhoicas/pdv-multiloja/internal/domain/entity"

// LojaAdapter é a interface uniforme para a persistência de uma loja.
// Cada loja física tem um adapter independente; não existe transação
// cruzando adapters nem mesmo entre as portas de um mesmo adapter —
// cada chamada é uma operação remota isolada.
type LojaAdapter interface {
	Loja() entity.Loja
	Produtos() ProdutoRepository
	Clientes() ClienteRepository
	Standby() StandbyRepository
	Vendas() VendaRepository
	Movimentos() MovimentoEstoqueRepository
	Vendedores() VendedorRepository
}

// Lojas registro dos adapters das lojas físicas.
type Lojas map[entity.Loja]LojaAdapter

// Get devolve o adapter da loja, ou nil se não registrada.
func (ls Lojas) Get(loja entity.Loja) LojaAdapter {
	return ls[loja]
}
