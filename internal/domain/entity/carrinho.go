package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ItemCarrinho é uma linha efêmera do carrinho de um vendedor.
// Nunca é persistido diretamente: ao enviar para standby é serializado em
// JSON junto com o snapshot de estoque conhecido no momento da montagem.
type ItemCarrinho struct {
	ProdutoID    string          `json:"produto_id"`
	Codigo       string          `json:"codigo"`
	Nome         string          `json:"nome"`
	Cor          string          `json:"cor,omitempty"`
	Tamanho      string          `json:"tamanho,omitempty"`
	Quantidade   int             `json:"quantidade"`
	PrecoVenda   decimal.Decimal `json:"preco_venda"`
	EstoqueAtual int             `json:"estoque_atual"` // último estoque conhecido (guarda de UI, não autoritativo)
	LojaOrigem   Loja            `json:"loja_origem"`
}

// Subtotal preço unitário x quantidade.
func (i ItemCarrinho) Subtotal() decimal.Decimal {
	return i.PrecoVenda.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// TotalCarrinho soma os subtotais das linhas.
func TotalCarrinho(itens []ItemCarrinho) decimal.Decimal {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.Subtotal())
	}
	return total
}

// SerializarCarrinho codifica as linhas no formato gravado em vendas_standby.
func SerializarCarrinho(itens []ItemCarrinho) (string, error) {
	b, err := json.Marshal(itens)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DesserializarCarrinho decodifica o JSON gravado em vendas_standby.
func DesserializarCarrinho(raw string) ([]ItemCarrinho, error) {
	if raw == "" {
		return nil, nil
	}
	var itens []ItemCarrinho
	if err := json.Unmarshal([]byte(raw), &itens); err != nil {
		return nil, err
	}
	return itens, nil
}
