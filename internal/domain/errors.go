package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrValidacao             = errors.New("dados obrigatórios ausentes ou inválidos")
	ErrConflito              = errors.New("conflito com outro atendimento em aberto")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrEstoqueInsuficiente   = errors.New("estoque insuficiente")
	ErrLojaIndisponivel      = errors.New("loja indisponível no momento")
	ErrNaoAutorizado         = errors.New("não autorizado")
	ErrAcessoNegado          = errors.New("acesso negado")
	ErrCarrinhoVazio         = errors.New("carrinho vazio")
	ErrStandbyJaReivindicado = errors.New("venda em standby já está sendo finalizada")
)

// Etapas da sequência de finalização, na ordem em que executam.
// Usadas em FalhaParcialError para indicar até onde a sequência chegou.
const (
	EtapaCriarVenda     = "criar_venda"
	EtapaCriarItens     = "criar_itens"
	EtapaBaixarEstoque  = "baixar_estoque"
	EtapaRemoverStandby = "remover_standby"
)

// FalhaParcialError indica que uma etapa posterior da finalização falhou
// depois de etapas anteriores já terem sido gravadas. Não há rollback
// automático: o chamador deve repetir a sequência com o mesmo número de
// venda ou reconciliar manualmente.
type FalhaParcialError struct {
	NumeroVenda      string   // chave de idempotência para repetição/reconciliação
	Loja             string   // loja de destino da venda
	EtapasConcluidas []string // etapas já gravadas, na ordem
	EtapaFalhou      string
	Err              error
}

func (e *FalhaParcialError) Error() string {
	return fmt.Sprintf("falha parcial na venda %s (loja %s): etapa %s falhou após [%s]: %v",
		e.NumeroVenda, e.Loja, e.EtapaFalhou, strings.Join(e.EtapasConcluidas, ", "), e.Err)
}

func (e *FalhaParcialError) Unwrap() error { return e.Err }

// EtapaConcluida informa se a etapa indicada já foi gravada.
func (e *FalhaParcialError) EtapaConcluida(etapa string) bool {
	for _, c := range e.EtapasConcluidas {
		if c == etapa {
			return true
		}
	}
	return false
}
