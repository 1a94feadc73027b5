package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// ProdutoResponse produto em respostas de catálogo.
type ProdutoResponse struct {
	ID           string          `json:"id"`
	Loja         string          `json:"loja"`
	Codigo       string          `json:"codigo"`
	Nome         string          `json:"nome"`
	Tipo         string          `json:"tipo,omitempty"`
	Cor          string          `json:"cor,omitempty"`
	Tamanho      string          `json:"tamanho,omitempty"`
	PrecoVenda   decimal.Decimal `json:"preco_venda"`
	EstoqueAtual int             `json:"estoque_atual"`
}

// FromProduto converte a entidade para o contrato da API.
func FromProduto(p *entity.Produto) ProdutoResponse {
	return ProdutoResponse{
		ID:           p.ID,
		Loja:         string(p.Loja),
		Codigo:       p.Codigo,
		Nome:         p.Nome,
		Tipo:         p.Tipo,
		Cor:          p.Cor,
		Tamanho:      p.Tamanho,
		PrecoVenda:   p.PrecoVenda,
		EstoqueAtual: p.EstoqueAtual,
	}
}

// GrupoProdutoResponse agrupamento por nome com as variações (cor/tamanho).
type GrupoProdutoResponse struct {
	Nome      string            `json:"nome"`
	Variacoes []ProdutoResponse `json:"variacoes"`
}
