// Package fulfillment executa a sequência que transforma uma venda em
// standby em venda registrada no ledger com baixa de estoque.
//
// A sequência tem quatro etapas — criar venda, criar itens, baixar
// estoque + auditoria, remover standby — executadas como chamadas
// remotas independentes, sem transação entre elas. Uma falha no meio
// deixa estado parcial observável; a recuperação é repetir a sequência
// com o mesmo número de venda (cada etapa é idempotente por chave) ou
// reconciliar manualmente a partir do log.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pdv-multiloja/internal/application/roteamento"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
	"github.com/jhoicas/pdv-multiloja/pkg/logger"
)

// Engine motor de finalização.
type Engine struct {
	lojas     repository.Lojas
	rotas     roteamento.Estrategia
	numerador *Numerador
	log       *logger.Logger

	mu            sync.Mutex
	reivindicadas map[string]struct{} // standby em finalização neste processo
}

// NewEngine constrói o motor.
func NewEngine(lojas repository.Lojas, rotas roteamento.Estrategia, numerador *Numerador, log *logger.Logger) *Engine {
	return &Engine{
		lojas:         lojas,
		rotas:         rotas,
		numerador:     numerador,
		log:           log,
		reivindicadas: make(map[string]struct{}),
	}
}

// reivindicar garante um único finalizador por standby dentro do processo.
func (e *Engine) reivindicar(standbyID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ocupado := e.reivindicadas[standbyID]; ocupado {
		return domain.ErrStandbyJaReivindicado
	}
	e.reivindicadas[standbyID] = struct{}{}
	return nil
}

func (e *Engine) liberar(standbyID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.reivindicadas, standbyID)
}

// FinalizarDireto finaliza uma venda em standby na própria loja do
// vendedor. A venda nasce com o sentinela "pendente_caixa": registrada
// no ledger, aguardando liquidação no caixa, fora de toda métrica de
// receita até lá.
func (e *Engine) FinalizarDireto(ctx context.Context, loja entity.Loja, standbyID, usuarioID string) (*entity.Venda, error) {
	return e.finalizarDireto(ctx, loja, standbyID, usuarioID, "")
}

func (e *Engine) finalizarDireto(ctx context.Context, loja entity.Loja, standbyID, usuarioID, numeroRepeticao string) (*entity.Venda, error) {
	adapter := e.lojas.Get(loja)
	if adapter == nil {
		return nil, domain.ErrNotFound
	}
	if err := e.reivindicar(standbyID); err != nil {
		return nil, err
	}
	defer e.liberar(standbyID)

	sb, itens, err := e.carregarStandby(ctx, adapter, standbyID, numeroRepeticao)
	if err != nil {
		return nil, err
	}
	if sb == nil {
		// Standby já removido: repetição de uma sequência que terminou.
		// Devolve a venda gravada; se nem ela existe, nunca houve claim.
		venda, err := adapter.Vendas().GetByNumero(ctx, numeroRepeticao)
		if err != nil {
			return nil, err
		}
		if venda == nil {
			return nil, domain.ErrNotFound
		}
		return venda, nil
	}

	numero := numeroRepeticao
	if numero == "" {
		numero = e.numerador.Proximo(loja.PrefixoVenda())
	}
	venda := &entity.Venda{
		ID:              uuid.New().String(),
		Loja:            loja,
		NumeroVenda:     numero,
		VendedorNome:    sb.VendedorNome,
		ClienteNome:     sb.ClienteNome,
		ClienteTelefone: sb.ClienteTelefone,
		ValorTotal:      sb.ValorTotal,
		ValorFinal:      sb.ValorTotal,
		FormaPagamento:  entity.FormaPagamentoPendenteCaixa,
		Status:          entity.StatusVendaAtiva,
		DataVenda:       time.Now(),
	}
	// Caminho direto: todas as linhas são da própria loja, todas baixam.
	return e.executar(ctx, adapter, adapter, sb, venda, itens, itens, usuarioID)
}

// FinalizarSeparacao finaliza um pedido online: resolve a loja de destino
// pela origem dos itens, cria a venda lá (número SEP-, forma de pagamento
// "separado_online", atribuída ao vendedor original) e remove o standby
// da fila de origem.
//
// Apenas as linhas cuja loja de origem coincide com o destino baixam
// estoque; as linhas da loja "perdedora" entram no ledger (item e
// receita) sem baixa — comportamento herdado, mantido deliberadamente
// (ver DESIGN.md).
func (e *Engine) FinalizarSeparacao(ctx context.Context, lojaFila entity.Loja, standbyID, separadorNome, usuarioID string) (*entity.Venda, error) {
	return e.finalizarSeparacao(ctx, lojaFila, standbyID, separadorNome, usuarioID, "")
}

func (e *Engine) finalizarSeparacao(ctx context.Context, lojaFila entity.Loja, standbyID, separadorNome, usuarioID, numeroRepeticao string) (*entity.Venda, error) {
	fila := e.lojas.Get(lojaFila)
	if fila == nil {
		return nil, domain.ErrNotFound
	}
	if err := e.reivindicar(standbyID); err != nil {
		return nil, err
	}
	defer e.liberar(standbyID)

	sb, itens, err := e.carregarStandby(ctx, fila, standbyID, numeroRepeticao)
	if err != nil {
		return nil, err
	}
	if sb == nil {
		// Sequência anterior terminou; procura a venda nas lojas físicas.
		for _, loja := range entity.LojasFisicas {
			venda, err := e.lojas.Get(loja).Vendas().GetByNumero(ctx, numeroRepeticao)
			if err != nil {
				return nil, err
			}
			if venda != nil {
				return venda, nil
			}
		}
		return nil, domain.ErrNotFound
	}

	destino := e.rotas.ResolverDestino(itens)
	destAdapter := e.lojas.Get(destino)
	if destAdapter == nil {
		return nil, domain.ErrNotFound
	}

	numero := numeroRepeticao
	if numero == "" {
		numero = e.numerador.Proximo(entity.PrefixoSeparacao)
	}
	venda := &entity.Venda{
		ID:              uuid.New().String(),
		Loja:            destino,
		NumeroVenda:     numero,
		VendedorNome:    sb.VendedorNome,
		ClienteNome:     sb.ClienteNome,
		ClienteTelefone: sb.ClienteTelefone,
		ValorTotal:      sb.ValorTotal,
		ValorFinal:      sb.ValorTotal,
		FormaPagamento:  entity.FormaPagamentoSeparadoOnline,
		Status:          entity.StatusVendaAtiva,
		Observacoes:     fmt.Sprintf("%s%s | ORIGINAL: %s", entity.ObsPrefixoSeparadoPor, separadorNome, sb.Observacoes),
		DataVenda:       time.Now(),
	}

	var baixa []entity.ItemCarrinho
	for _, it := range itens {
		if it.LojaOrigem == destino {
			baixa = append(baixa, it)
		}
	}
	return e.executar(ctx, destAdapter, fila, sb, venda, itens, baixa, usuarioID)
}

// Repeticao identifica uma finalização a repetir com o mesmo número de
// venda (chave de idempotência) após falha parcial ou loja indisponível.
type Repeticao struct {
	LojaFila      entity.Loja
	StandbyID     string
	NumeroVenda   string
	SeparadorNome string // exigido apenas para números SEP-
	UsuarioID     string
}

// Repetir reexecuta a sequência de finalização. Etapas já gravadas são
// detectadas e puladas: venda duplicada retoma pela venda existente,
// itens já inseridos não se repetem, baixas já auditadas não baixam de
// novo, standby já removido é tolerado.
func (e *Engine) Repetir(ctx context.Context, in Repeticao) (*entity.Venda, error) {
	if in.NumeroVenda == "" || in.StandbyID == "" {
		return nil, domain.ErrValidacao
	}
	if strings.HasPrefix(in.NumeroVenda, entity.PrefixoSeparacao+"-") {
		return e.finalizarSeparacao(ctx, in.LojaFila, in.StandbyID, in.SeparadorNome, in.UsuarioID, in.NumeroVenda)
	}
	return e.finalizarDireto(ctx, in.LojaFila, in.StandbyID, in.UsuarioID, in.NumeroVenda)
}

// carregarStandby lê a entrada da fila. Em repetição, standby ausente não
// é erro: sinaliza (nil, nil, nil) para o chamador resolver pela venda.
func (e *Engine) carregarStandby(ctx context.Context, fila repository.LojaAdapter, standbyID, numeroRepeticao string) (*entity.VendaStandby, []entity.ItemCarrinho, error) {
	sb, err := fila.Standby().GetByID(ctx, standbyID)
	if err != nil {
		return nil, nil, err
	}
	if sb == nil {
		if numeroRepeticao != "" {
			return nil, nil, nil
		}
		return nil, nil, domain.ErrNotFound
	}
	itens, err := sb.Itens()
	if err != nil {
		return nil, nil, fmt.Errorf("carrinho gravado ilegível: %w", err)
	}
	if len(itens) == 0 {
		return nil, nil, domain.ErrCarrinhoVazio
	}
	return sb, itens, nil
}

// executar roda a sequência terminal de quatro etapas.
//
// destino recebe venda, itens e baixas; fila é a loja dona do standby.
// A primeira etapa que falhar depois de algo ter sido gravado devolve
// *domain.FalhaParcialError com o número da venda para reconciliação.
func (e *Engine) executar(
	ctx context.Context,
	destino, fila repository.LojaAdapter,
	sb *entity.VendaStandby,
	venda *entity.Venda,
	itens, baixa []entity.ItemCarrinho,
	usuarioID string,
) (*entity.Venda, error) {
	var concluidas []string
	falha := func(etapa string, err error) (*entity.Venda, error) {
		fp := &domain.FalhaParcialError{
			NumeroVenda:      venda.NumeroVenda,
			Loja:             string(venda.Loja),
			EtapasConcluidas: concluidas,
			EtapaFalhou:      etapa,
			Err:              err,
		}
		e.log.Error().
			Str("numero_venda", venda.NumeroVenda).
			Str("loja", string(venda.Loja)).
			Str("standby_id", sb.ID).
			Str("etapa", etapa).
			Strs("etapas_concluidas", concluidas).
			Err(err).
			Msg("falha parcial na finalização; repetir com o mesmo número ou reconciliar")
		return nil, fp
	}

	// Etapa 1 — criar a venda no ledger de destino. Número duplicado
	// significa repetição: retoma a venda já gravada.
	if err := destino.Vendas().Create(ctx, venda); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			existente, gerr := destino.Vendas().GetByNumero(ctx, venda.NumeroVenda)
			if gerr != nil {
				return nil, gerr
			}
			if existente == nil {
				return nil, err
			}
			venda = existente
		} else {
			// Nada gravado ainda: o standby permanece, reenvio é seguro.
			return nil, fmt.Errorf("criar venda %s: %w", venda.NumeroVenda, err)
		}
	}
	concluidas = append(concluidas, domain.EtapaCriarVenda)

	// Etapa 2 — itens com snapshot de código, nome e preço, reconciliados
	// linha a linha: uma inserção anterior pode ter parado no meio do
	// lote, então a repetição insere apenas o que falta.
	gravados, err := destino.Vendas().ListItens(ctx, venda.ID)
	if err != nil {
		return falha(domain.EtapaCriarItens, err)
	}
	existentes := make(map[string]bool, len(gravados))
	for _, g := range gravados {
		existentes[g.ProdutoID] = true
	}
	var linhas []*entity.ItemVenda
	for _, it := range itens {
		if existentes[it.ProdutoID] {
			continue
		}
		linhas = append(linhas, &entity.ItemVenda{
			ID:            uuid.New().String(),
			VendaID:       venda.ID,
			ProdutoID:     it.ProdutoID,
			ProdutoCodigo: it.Codigo,
			ProdutoNome:   it.Nome,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoVenda,
			Subtotal:      it.Subtotal(),
		})
	}
	if len(linhas) > 0 {
		if err := destino.Vendas().CreateItens(ctx, linhas); err != nil {
			return falha(domain.EtapaCriarItens, err)
		}
	}
	concluidas = append(concluidas, domain.EtapaCriarItens)

	// Etapa 3 — baixa condicional por linha. Baixa e auditoria são uma
	// única operação na loja, idempotente por (venda, produto): linha já
	// auditada não baixa de novo na repetição, e uma falha no meio não
	// deixa baixa sem trilha.
	for _, it := range baixa {
		mov := &entity.MovimentoEstoque{
			ID:                    uuid.New().String(),
			Loja:                  destino.Loja(),
			ProdutoID:             it.ProdutoID,
			TipoMovimentacao:      entity.MovimentacaoVenda,
			QuantidadeMovimentada: -it.Quantidade,
			Motivo:                fmt.Sprintf("Venda %s", venda.NumeroVenda),
			UsuarioID:             usuarioID,
			VendaID:               venda.ID,
			CreatedAt:             time.Now(),
		}
		if err := destino.Produtos().BaixarEstoque(ctx, mov); err != nil {
			return falha(domain.EtapaBaixarEstoque, fmt.Errorf("produto %s: %w", it.Codigo, err))
		}
	}
	concluidas = append(concluidas, domain.EtapaBaixarEstoque)

	// Etapa 4 — remover o standby da fila de origem. Ausente em
	// repetição já conta como removido.
	if err := fila.Standby().Delete(ctx, sb.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return falha(domain.EtapaRemoverStandby, err)
	}

	e.log.Info().
		Str("numero_venda", venda.NumeroVenda).
		Str("loja", string(venda.Loja)).
		Str("vendedor", venda.VendedorNome).
		Str("valor_final", venda.ValorFinal.StringFixed(2)).
		Msg("venda finalizada")
	return venda, nil
}
