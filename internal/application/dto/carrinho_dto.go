package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// AdicionarItemRequest body para POST /api/carrinho/itens.
// Codigo é a entrada opaca do leitor; Loja indica em qual catálogo resolver
// (vendedor online pode adicionar de qualquer loja física).
type AdicionarItemRequest struct {
	Loja       string `json:"loja"`
	Codigo     string `json:"codigo"`
	Quantidade int    `json:"quantidade"`
}

// AlterarQuantidadeRequest body para PUT /api/carrinho/itens/:produtoId.
type AlterarQuantidadeRequest struct {
	Quantidade int `json:"quantidade"`
}

// ItemCarrinhoDTO linha do carrinho em respostas.
type ItemCarrinhoDTO struct {
	ProdutoID    string          `json:"produto_id"`
	Codigo       string          `json:"codigo"`
	Nome         string          `json:"nome"`
	Cor          string          `json:"cor,omitempty"`
	Tamanho      string          `json:"tamanho,omitempty"`
	Quantidade   int             `json:"quantidade"`
	PrecoVenda   decimal.Decimal `json:"preco_venda"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	EstoqueAtual int             `json:"estoque_atual"`
	LojaOrigem   string          `json:"loja_origem"`
}

// CarrinhoResponse estado atual do carrinho do vendedor.
type CarrinhoResponse struct {
	Itens []ItemCarrinhoDTO `json:"itens"`
	Total decimal.Decimal   `json:"total"`
}

// FromItens converte as linhas do carrinho para o contrato da API.
func FromItens(itens []entity.ItemCarrinho) CarrinhoResponse {
	out := CarrinhoResponse{Itens: make([]ItemCarrinhoDTO, 0, len(itens)), Total: entity.TotalCarrinho(itens)}
	for _, it := range itens {
		out.Itens = append(out.Itens, ItemCarrinhoDTO{
			ProdutoID:    it.ProdutoID,
			Codigo:       it.Codigo,
			Nome:         it.Nome,
			Cor:          it.Cor,
			Tamanho:      it.Tamanho,
			Quantidade:   it.Quantidade,
			PrecoVenda:   it.PrecoVenda,
			Subtotal:     it.Subtotal(),
			EstoqueAtual: it.EstoqueAtual,
			LojaOrigem:   string(it.LojaOrigem),
		})
	}
	return out
}
