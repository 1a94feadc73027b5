package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um SKU do catálogo de uma loja.
// EstoqueAtual só é alterado pelo motor de finalização (baixa condicional)
// e pela gestão de estoque, que é subsistema externo.
type Produto struct {
	ID           string
	Loja         Loja
	Codigo       string // único dentro da loja
	Nome         string
	Tipo         string
	Cor          string
	Tamanho      string
	PrecoVenda   decimal.Decimal
	EstoqueAtual int
	Ativo        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
