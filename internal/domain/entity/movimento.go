package entity

import "time"

// Tipos de movimentação de estoque gravados por este serviço.
const MovimentacaoVenda = "venda"

// MovimentoEstoque linha de auditoria append-only: uma por item por
// finalização, referenciando a venda que causou a baixa.
type MovimentoEstoque struct {
	ID                    string
	Loja                  Loja
	ProdutoID             string
	TipoMovimentacao      string
	QuantidadeAnterior    int
	QuantidadeMovimentada int // negativo em vendas
	QuantidadeAtual       int
	Motivo                string // "Venda {numero_venda}"
	UsuarioID             string
	VendaID               string
	CreatedAt             time.Time
}
