package entity

import "github.com/shopspring/decimal"

// Vendedor funcionário de loja com meta mensal de vendas.
// O cadastro é mantido pelo subsistema de usuários; aqui só interessa
// para o ranking e o atingimento de meta no consolidado.
type Vendedor struct {
	ID         string
	Loja       Loja
	Nome       string
	Tipo       string // "vendedor", "vendedor_online", "separador_online", ...
	MetaMensal decimal.Decimal
	Ativo      bool
}
