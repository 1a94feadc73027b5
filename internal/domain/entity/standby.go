package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Convenções de texto livre em Observacoes, carregadas do fluxo online.
// São contrato de compatibilidade: a fila de separação filtra por elas.
const (
	ObsVendaOnline        = "VENDA ONLINE"
	ObsSeparadorPendente  = "Separador: PENDENTE"
	ObsPrefixoSeparadoPor = "SEPARADO POR: "
)

// VendaStandby é uma venda enviada pelo vendedor e ainda não registrada no
// ledger: aguarda pagamento no caixa ou separação/finalização remota.
// É destruída exatamente uma vez — por finalização, por edição (reclaim)
// ou por cancelamento.
type VendaStandby struct {
	ID              string
	Loja            Loja // loja dona da fila
	VendedorNome    string
	ClienteNome     string
	ClienteTelefone string
	ClienteCPF      string
	ClienteCidade   string
	OndeConheceu    string
	Carrinho        string // linhas serializadas em JSON ([]ItemCarrinho)
	ValorTotal      decimal.Decimal
	Observacoes     string
	CreatedAt       time.Time
}

// Itens desserializa as linhas do carrinho.
func (v *VendaStandby) Itens() ([]ItemCarrinho, error) {
	return DesserializarCarrinho(v.Carrinho)
}

// Online informa se a entrada veio do canal online (convenção de observações
// ou vendedor do canal online).
func (v *VendaStandby) Online() bool {
	return strings.Contains(v.Observacoes, ObsVendaOnline) ||
		strings.Contains(v.Observacoes, ObsSeparadorPendente) ||
		strings.Contains(strings.ToLower(v.VendedorNome), "online")
}
