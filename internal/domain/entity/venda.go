package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento com significado para o pipeline. Valores estáveis:
// o caixa e os relatórios externos dependem deles byte a byte.
const (
	// FormaPagamentoPendenteCaixa é o sentinela "aguardando caixa": a venda
	// está no ledger mas não liquidada, e fica fora de toda métrica de receita.
	FormaPagamentoPendenteCaixa = "pendente_caixa"
	// FormaPagamentoSeparadoOnline marca vendas criadas pela separação online.
	FormaPagamentoSeparadoOnline = "separado_online"
)

// Status de venda. Transições posteriores (cancelamento, liquidação)
// pertencem ao subsistema de caixa, externo a este serviço.
const (
	StatusVendaAtiva     = "ativa"
	StatusVendaCancelada = "cancelada"
)

// Venda entrada do ledger de uma loja. Imutável após criada, exceto
// status e forma de pagamento, alterados pelo caixa.
type Venda struct {
	ID              string
	Loja            Loja
	NumeroVenda     string // "{PREFIXO}-{milissegundos}", único dentro da loja
	VendedorNome    string
	ClienteNome     string
	ClienteTelefone string
	ValorTotal      decimal.Decimal
	ValorFinal      decimal.Decimal
	FormaPagamento  string
	Status          string
	Observacoes     string
	DataVenda       time.Time
}

// ContaParaReceita informa se a venda entra nas agregações de receita.
// Filtro único aplicado de forma idêntica em todas as métricas.
func (v *Venda) ContaParaReceita() bool {
	return v.Status == StatusVendaAtiva && v.FormaPagamento != FormaPagamentoPendenteCaixa
}

// ItemVenda linha de uma venda. Os campos de produto são snapshots:
// totais históricos não mudam quando o catálogo muda.
type ItemVenda struct {
	ID            string
	VendaID       string
	ProdutoID     string
	ProdutoCodigo string
	ProdutoNome   string
	Quantidade    int
	PrecoUnitario decimal.Decimal
	Subtotal      decimal.Decimal
}
