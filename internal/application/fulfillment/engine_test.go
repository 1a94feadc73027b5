package fulfillment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-multiloja/internal/application/fulfillment"
	"github.com/jhoicas/pdv-multiloja/internal/application/roteamento"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
	"github.com/jhoicas/pdv-multiloja/internal/infrastructure/memoria"
	"github.com/jhoicas/pdv-multiloja/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

type cenario struct {
	tatuape *memoria.Adapter
	mogi    *memoria.Adapter
	lojas   repository.Lojas
	engine  *fulfillment.Engine
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()
	tatuape := memoria.NewAdapter(entity.LojaTatuape)
	mogi := memoria.NewAdapter(entity.LojaMogi)
	lojas := repository.Lojas{
		entity.LojaTatuape: tatuape,
		entity.LojaMogi:    mogi,
	}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	engine := fulfillment.NewEngine(lojas, roteamento.MaioriaPorLinhas{}, fulfillment.NewNumerador(), log)
	return &cenario{tatuape: tatuape, mogi: mogi, lojas: lojas, engine: engine}
}

func produto(id, codigo, nome string, preco int64, estoque int) *entity.Produto {
	return &entity.Produto{
		ID:           id,
		Codigo:       codigo,
		Nome:         nome,
		PrecoVenda:   decimal.NewFromInt(preco),
		EstoqueAtual: estoque,
		Ativo:        true,
	}
}

// criaStandby grava uma entrada na fila da loja com as linhas dadas.
func criaStandby(t *testing.T, loja *memoria.Adapter, vendedor string, obs string, itens ...entity.ItemCarrinho) string {
	t.Helper()
	raw, err := entity.SerializarCarrinho(itens)
	require.NoError(t, err)
	id, err := loja.Standby().Create(context.Background(), &entity.VendaStandby{
		VendedorNome:    vendedor,
		ClienteNome:     "Cliente Teste",
		ClienteTelefone: "11999990000",
		Carrinho:        raw,
		ValorTotal:      entity.TotalCarrinho(itens),
		Observacoes:     obs,
		CreatedAt:       time.Now(),
	})
	require.NoError(t, err)
	return id
}

func linha(p *entity.Produto, loja entity.Loja, qtd int) entity.ItemCarrinho {
	return entity.ItemCarrinho{
		ProdutoID:    p.ID,
		Codigo:       p.Codigo,
		Nome:         p.Nome,
		Quantidade:   qtd,
		PrecoVenda:   p.PrecoVenda,
		EstoqueAtual: p.EstoqueAtual,
		LojaOrigem:   loja,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalização direta (balcão)
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalizarDireto_CaminhoFeliz(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 2))

	venda, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	require.NoError(t, err)

	// Venda no ledger: numero TAT-, pendente de caixa, ativa.
	assert.Contains(t, venda.NumeroVenda, "TAT-")
	assert.Equal(t, entity.FormaPagamentoPendenteCaixa, venda.FormaPagamento)
	assert.Equal(t, entity.StatusVendaAtiva, venda.Status)
	assert.Equal(t, "maria", venda.VendedorNome)
	assert.True(t, venda.ValorFinal.Equal(decimal.NewFromInt(100)), "valor final = 2 x 50")

	// Itens com snapshot de código, nome e preço.
	itens, err := c.tatuape.Vendas().ListItens(context.Background(), venda.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1)
	assert.Equal(t, "CAM001", itens[0].ProdutoCodigo)
	assert.Equal(t, 2, itens[0].Quantidade)

	// Estoque baixado e auditado.
	assert.Equal(t, 8, c.tatuape.EstoqueDe("p1"))
	movs, err := c.tatuape.Movimentos().ListByVenda(context.Background(), venda.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovimentacaoVenda, movs[0].TipoMovimentacao)
	assert.Equal(t, -2, movs[0].QuantidadeMovimentada)
	assert.Equal(t, 10, movs[0].QuantidadeAnterior)
	assert.Equal(t, 8, movs[0].QuantidadeAtual)
	assert.Equal(t, "Venda "+venda.NumeroVenda, movs[0].Motivo)

	// Standby destruído exatamente uma vez.
	sb, err := c.tatuape.Standby().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sb)
}

func TestFinalizarDireto_StandbyInexistente(t *testing.T) {
	c := novoCenario(t)
	_, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, "nao-existe", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinalizarDireto_EstoqueInsuficiente_NaoDestroiStandby(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 1)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 3))

	_, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)

	// Falha parcial: venda e itens já gravados, baixa não; estoque intacto.
	var parcial *domain.FalhaParcialError
	require.ErrorAs(t, err, &parcial)
	assert.Equal(t, domain.EtapaBaixarEstoque, parcial.EtapaFalhou)
	assert.True(t, parcial.EtapaConcluida(domain.EtapaCriarVenda))
	assert.Equal(t, 1, c.tatuape.EstoqueDe("p1"))

	// Standby permanece para reconciliação.
	sb, err := c.tatuape.Standby().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, sb)
}

// Duas finalizações concorrentes do mesmo standby: exatamente uma venda.
func TestFinalizarDireto_ConcorrenciaMesmoStandby(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 1))

	var wg sync.WaitGroup
	resultados := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, resultados[i] = c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
		}(i)
	}
	wg.Wait()

	sucessos := 0
	for _, err := range resultados {
		if err == nil {
			sucessos++
		}
	}
	assert.Equal(t, 1, sucessos, "exatamente um finalizador deve vencer")
	// Estoque baixado uma única vez.
	assert.Equal(t, 9, c.tatuape.EstoqueDe("p1"))
}

// Baixas concorrentes sobre a última unidade: a escrita condicional
// garante que apenas uma vence e o estoque nunca fica negativo.
func TestFinalizar_CorridaPelaUltimaUnidade(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 1)
	c.tatuape.SeedProduto(p)
	idA := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 1))
	idB := criaStandby(t, c.tatuape, "joana", "", linha(p, entity.LojaTatuape, 1))

	var wg sync.WaitGroup
	erros := make([]error, 2)
	ids := []string{idA, idB}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, erros[i] = c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, ids[i], "u1")
		}(i)
	}
	wg.Wait()

	sucessos := 0
	insuficientes := 0
	for _, err := range erros {
		switch {
		case err == nil:
			sucessos++
		case errors.Is(err, domain.ErrEstoqueInsuficiente):
			insuficientes++
		}
	}
	assert.Equal(t, 1, sucessos)
	assert.Equal(t, 1, insuficientes)
	assert.Equal(t, 0, c.tatuape.EstoqueDe("p1"), "estoque nunca fica negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Separação online
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalizarSeparacao_BaixaApenasLinhasDoDestino(t *testing.T) {
	c := novoCenario(t)
	pTat := produto("t1", "TAT001", "Vestido", 100, 5)
	pMogi := produto("m1", "MOG001", "Calça", 80, 5)
	c.tatuape.SeedProduto(pTat)
	c.mogi.SeedProduto(pMogi)

	// Duas linhas de tatuape, uma de mogi: maioria manda para tatuape.
	pTat2 := produto("t2", "TAT002", "Saia", 60, 5)
	c.tatuape.SeedProduto(pTat2)
	obs := entity.ObsVendaOnline + " - Tipo: entrega | Endereço: Rua X | " + entity.ObsSeparadorPendente + " | Loja: tatuape"
	id := criaStandby(t, c.tatuape, "vendedor online", obs,
		linha(pTat, entity.LojaTatuape, 1),
		linha(pTat2, entity.LojaTatuape, 1),
		linha(pMogi, entity.LojaMogi, 1),
	)

	venda, err := c.engine.FinalizarSeparacao(context.Background(), entity.LojaTatuape, id, "carlos", "u1")
	require.NoError(t, err)

	assert.Contains(t, venda.NumeroVenda, "SEP-")
	assert.Equal(t, entity.FormaPagamentoSeparadoOnline, venda.FormaPagamento)
	assert.Equal(t, entity.LojaTatuape, venda.Loja)
	assert.Equal(t, "vendedor online", venda.VendedorNome, "venda atribuída ao vendedor original")
	assert.Contains(t, venda.Observacoes, entity.ObsPrefixoSeparadoPor+"carlos")
	assert.Contains(t, venda.Observacoes, "ORIGINAL: "+obs)

	// Todas as linhas entram no ledger...
	itens, err := c.tatuape.Vendas().ListItens(context.Background(), venda.ID)
	require.NoError(t, err)
	assert.Len(t, itens, 3)

	// ...mas só as do destino baixam estoque. A linha de mogi fica sem baixa.
	assert.Equal(t, 4, c.tatuape.EstoqueDe("t1"))
	assert.Equal(t, 4, c.tatuape.EstoqueDe("t2"))
	assert.Equal(t, 5, c.mogi.EstoqueDe("m1"), "linha da loja perdedora não baixa")
}

func TestFinalizarSeparacao_DestinoDeterministico(t *testing.T) {
	c := novoCenario(t)
	pTat := produto("t1", "TAT001", "Vestido", 100, 5)
	pMogi1 := produto("m1", "MOG001", "Calça", 80, 5)
	pMogi2 := produto("m2", "MOG002", "Blusa", 70, 5)
	c.tatuape.SeedProduto(pTat)
	c.mogi.SeedProduto(pMogi1)
	c.mogi.SeedProduto(pMogi2)

	// Maioria de mogi: a fila é de tatuape, mas a venda vai para mogi.
	id := criaStandby(t, c.tatuape, "vendedor online", entity.ObsVendaOnline,
		linha(pTat, entity.LojaTatuape, 1),
		linha(pMogi1, entity.LojaMogi, 1),
		linha(pMogi2, entity.LojaMogi, 1),
	)

	venda, err := c.engine.FinalizarSeparacao(context.Background(), entity.LojaTatuape, id, "carlos", "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.LojaMogi, venda.Loja)

	// O standby saiu da fila de tatuape, a venda vive no ledger de mogi.
	sb, err := c.tatuape.Standby().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sb)
	gravada, err := c.mogi.Vendas().GetByNumero(context.Background(), venda.NumeroVenda)
	require.NoError(t, err)
	assert.NotNil(t, gravada)
}

// ──────────────────────────────────────────────────────────────────────────────
// Falha parcial e repetição idempotente
// ──────────────────────────────────────────────────────────────────────────────

func TestRepetir_RetomaAposFalhaNaAuditoria(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 2))

	// Primeira tentativa: a gravação da auditoria falha. Baixa e
	// auditoria são uma operação só, então a baixa não pode ter ficado.
	c.tatuape.FalhaMovimento = errors.New("timeout na loja")
	_, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	require.Error(t, err)
	var parcial *domain.FalhaParcialError
	require.ErrorAs(t, err, &parcial)
	assert.Equal(t, domain.EtapaBaixarEstoque, parcial.EtapaFalhou)
	numero := parcial.NumeroVenda
	require.NotEmpty(t, numero)
	assert.Equal(t, 10, c.tatuape.EstoqueDe("p1"), "baixa sem trilha de auditoria não fica gravada")

	// A loja volta; repetir com o mesmo número conclui a sequência.
	c.tatuape.FalhaMovimento = nil
	venda, err := c.engine.Repetir(context.Background(), fulfillment.Repeticao{
		LojaFila:    entity.LojaTatuape,
		StandbyID:   id,
		NumeroVenda: numero,
		UsuarioID:   "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, numero, venda.NumeroVenda)

	// Nada aconteceu duas vezes: uma venda, um conjunto de itens,
	// estoque 10-2 apesar de a baixa ter rodado na primeira tentativa.
	assert.Equal(t, 8, c.tatuape.EstoqueDe("p1"))
	itens, err := c.tatuape.Vendas().ListItens(context.Background(), venda.ID)
	require.NoError(t, err)
	assert.Len(t, itens, 1)
	movs, err := c.tatuape.Movimentos().ListByVenda(context.Background(), venda.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	sb, err := c.tatuape.Standby().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sb, "standby removido na repetição")
}

func TestRepetir_FalhaNaRemocaoDoStandby_NaoBaixaDuasVezes(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 2))

	c.tatuape.FalhaDeleteStandby = errors.New("loja indisponível")
	_, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	var parcial *domain.FalhaParcialError
	require.ErrorAs(t, err, &parcial)
	assert.Equal(t, domain.EtapaRemoverStandby, parcial.EtapaFalhou)
	assert.Equal(t, 8, c.tatuape.EstoqueDe("p1"), "baixa aconteceu na primeira tentativa")

	c.tatuape.FalhaDeleteStandby = nil
	venda, err := c.engine.Repetir(context.Background(), fulfillment.Repeticao{
		LojaFila:    entity.LojaTatuape,
		StandbyID:   id,
		NumeroVenda: parcial.NumeroVenda,
		UsuarioID:   "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, c.tatuape.EstoqueDe("p1"), "repetição não baixa de novo")
	assert.Equal(t, parcial.NumeroVenda, venda.NumeroVenda)
}

// Lote de itens interrompido no meio: a repetição insere apenas as
// linhas que faltam, sem duplicar as que já estavam gravadas.
func TestRepetir_CompletaItensGravadosPelaMetade(t *testing.T) {
	c := novoCenario(t)
	p1 := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	p2 := produto("p2", "CAM002", "Camiseta Preta", 40, 10)
	c.tatuape.SeedProduto(p1)
	c.tatuape.SeedProduto(p2)
	id := criaStandby(t, c.tatuape, "maria", "",
		linha(p1, entity.LojaTatuape, 2),
		linha(p2, entity.LojaTatuape, 1),
	)

	// Primeira tentativa: só a primeira linha entra antes da falha.
	c.tatuape.FalhaCriarItens = errors.New("timeout na loja")
	c.tatuape.ItensAntesDaFalha = 1
	_, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	var parcial *domain.FalhaParcialError
	require.ErrorAs(t, err, &parcial)
	assert.Equal(t, domain.EtapaCriarItens, parcial.EtapaFalhou)

	venda, err := c.tatuape.Vendas().GetByNumero(context.Background(), parcial.NumeroVenda)
	require.NoError(t, err)
	require.NotNil(t, venda)
	itens, err := c.tatuape.Vendas().ListItens(context.Background(), venda.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1, "lote parou no meio")

	c.tatuape.FalhaCriarItens = nil
	c.tatuape.ItensAntesDaFalha = 0
	repetida, err := c.engine.Repetir(context.Background(), fulfillment.Repeticao{
		LojaFila:    entity.LojaTatuape,
		StandbyID:   id,
		NumeroVenda: parcial.NumeroVenda,
		UsuarioID:   "u1",
	})
	require.NoError(t, err)

	// A venda tem as duas linhas, cada produto uma única vez.
	itens, err = c.tatuape.Vendas().ListItens(context.Background(), repetida.ID)
	require.NoError(t, err)
	require.Len(t, itens, 2)
	porProduto := make(map[string]int)
	for _, item := range itens {
		porProduto[item.ProdutoID]++
	}
	assert.Equal(t, 1, porProduto["p1"])
	assert.Equal(t, 1, porProduto["p2"])

	assert.Equal(t, 8, c.tatuape.EstoqueDe("p1"))
	assert.Equal(t, 9, c.tatuape.EstoqueDe("p2"))
	sb, err := c.tatuape.Standby().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sb)
}

func TestRepetir_SequenciaJaConcluida_DevolveVendaGravada(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 1))

	venda, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	require.NoError(t, err)

	// Repetir depois de tudo pronto: devolve a mesma venda, sem efeito novo.
	repetida, err := c.engine.Repetir(context.Background(), fulfillment.Repeticao{
		LojaFila:    entity.LojaTatuape,
		StandbyID:   id,
		NumeroVenda: venda.NumeroVenda,
		UsuarioID:   "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, venda.NumeroVenda, repetida.NumeroVenda)
	assert.Equal(t, 9, c.tatuape.EstoqueDe("p1"))
}

func TestRepetir_SeparacaoPeloPrefixo(t *testing.T) {
	c := novoCenario(t)
	p := produto("t1", "TAT001", "Vestido", 100, 5)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "vendedor online", entity.ObsVendaOnline,
		linha(p, entity.LojaTatuape, 1))

	c.tatuape.FalhaDeleteStandby = errors.New("loja indisponível")
	_, err := c.engine.FinalizarSeparacao(context.Background(), entity.LojaTatuape, id, "carlos", "u1")
	var parcial *domain.FalhaParcialError
	require.ErrorAs(t, err, &parcial)

	c.tatuape.FalhaDeleteStandby = nil
	venda, err := c.engine.Repetir(context.Background(), fulfillment.Repeticao{
		LojaFila:      entity.LojaTatuape,
		StandbyID:     id,
		NumeroVenda:   parcial.NumeroVenda,
		SeparadorNome: "carlos",
		UsuarioID:     "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.FormaPagamentoSeparadoOnline, venda.FormaPagamento, "prefixo SEP- despacha pelo caminho de separação")
}

func TestFinalizarDireto_LojaForaDoAr_NadaGravado(t *testing.T) {
	c := novoCenario(t)
	p := produto("p1", "CAM001", "Camiseta Azul", 50, 10)
	c.tatuape.SeedProduto(p)
	id := criaStandby(t, c.tatuape, "maria", "", linha(p, entity.LojaTatuape, 1))

	c.tatuape.FalhaCriarVenda = domain.ErrLojaIndisponivel
	_, err := c.engine.FinalizarDireto(context.Background(), entity.LojaTatuape, id, "u1")
	require.Error(t, err)

	// Falha na primeira etapa não é falha parcial: nada foi gravado,
	// o standby permanece e o reenvio é seguro.
	var parcial *domain.FalhaParcialError
	assert.False(t, errors.As(err, &parcial))
	sb, gerr := c.tatuape.Standby().GetByID(context.Background(), id)
	require.NoError(t, gerr)
	assert.NotNil(t, sb)
	assert.Equal(t, 10, c.tatuape.EstoqueDe("p1"))
}
