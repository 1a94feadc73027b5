package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// EnviarStandbyRequest body para POST /api/standby.
// Os itens vêm do carrinho em memória do vendedor; o body traz só o cliente.
type EnviarStandbyRequest struct {
	ClienteNome     string `json:"cliente_nome"`
	ClienteTelefone string `json:"cliente_telefone,omitempty"`
	ClienteCPF      string `json:"cliente_cpf,omitempty"`
	ClienteCidade   string `json:"cliente_cidade,omitempty"`
	ClienteEndereco string `json:"cliente_endereco,omitempty"`
	OndeConheceu    string `json:"onde_conheceu,omitempty"`
	TipoEnvio       string `json:"tipo_envio,omitempty"` // canal online: retirada|entrega
	Observacoes     string `json:"observacoes,omitempty"`
}

// StandbyResponse entrada da fila de espera em respostas.
type StandbyResponse struct {
	ID              string            `json:"id"`
	Loja            string            `json:"loja"`
	VendedorNome    string            `json:"vendedor_nome"`
	ClienteNome     string            `json:"cliente_nome"`
	ClienteTelefone string            `json:"cliente_telefone,omitempty"`
	Itens           []ItemCarrinhoDTO `json:"itens"`
	ValorTotal      decimal.Decimal   `json:"valor_total"`
	Observacoes     string            `json:"observacoes,omitempty"`
	Online          bool              `json:"online"`
	CreatedAt       time.Time         `json:"created_at"`
}

// FromStandby converte a entidade para o contrato da API. Carrinho gravado
// ilegível aparece como lista vazia (a entrada ainda é listável).
func FromStandby(v *entity.VendaStandby) StandbyResponse {
	itens, _ := v.Itens()
	return StandbyResponse{
		ID:              v.ID,
		Loja:            string(v.Loja),
		VendedorNome:    v.VendedorNome,
		ClienteNome:     v.ClienteNome,
		ClienteTelefone: v.ClienteTelefone,
		Itens:           FromItens(itens).Itens,
		ValorTotal:      v.ValorTotal,
		Observacoes:     v.Observacoes,
		Online:          v.Online(),
		CreatedAt:       v.CreatedAt,
	}
}

// FromStandbyList converte uma lista de entradas.
func FromStandbyList(list []*entity.VendaStandby) []StandbyResponse {
	out := make([]StandbyResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromStandby(v))
	}
	return out
}
