// Package consolidado agrega, sob demanda, os ledgers das lojas físicas
// para os painéis de gestão. Somente leitura: nenhuma escrita em loja.
package consolidado

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

// limiarEstoqueBaixo produtos com menos unidades que isso entram no
// contador de reposição do painel.
const limiarEstoqueBaixo = 5

// Motor agregador de métricas consolidadas.
type Motor struct {
	lojas repository.Lojas
	agora func() time.Time
}

// NewMotor constrói o agregador com o relógio do sistema.
func NewMotor(lojas repository.Lojas) *Motor {
	return &Motor{lojas: lojas, agora: time.Now}
}

// ResumoLoja métricas de uma loja física.
type ResumoLoja struct {
	Loja           entity.Loja     `json:"loja"`
	ReceitaHoje    decimal.Decimal `json:"receita_hoje"`
	ReceitaMes     decimal.Decimal `json:"receita_mes"`
	ReceitaAno     decimal.Decimal `json:"receita_ano"`
	VendasMes      int             `json:"vendas_mes"`
	ValorEstoque   decimal.Decimal `json:"valor_estoque"`
	ProdutosAtivos int             `json:"produtos_ativos"`
	EstoqueBaixo   int             `json:"estoque_baixo"`
}

// DesempenhoVendedor posição de um vendedor no ranking do mês.
type DesempenhoVendedor struct {
	Nome             string          `json:"nome"`
	Loja             entity.Loja     `json:"loja"`
	TotalVendas      decimal.Decimal `json:"total_vendas"`
	QuantidadeVendas int             `json:"quantidade_vendas"`
	TicketMedio      decimal.Decimal `json:"ticket_medio"`
	Meta             decimal.Decimal `json:"meta"`
	MetaAtingida     decimal.Decimal `json:"meta_atingida"` // percentual; 0 quando não há meta
}

// Resumo visão consolidada de todas as lojas.
type Resumo struct {
	ReceitaHoje  decimal.Decimal      `json:"receita_hoje"`
	ReceitaMes   decimal.Decimal      `json:"receita_mes"`
	ReceitaAno   decimal.Decimal      `json:"receita_ano"`
	TicketMedio  decimal.Decimal      `json:"ticket_medio"`
	ValorEstoque decimal.Decimal      `json:"valor_estoque"`
	PorLoja      []ResumoLoja         `json:"por_loja"`
	Ranking      []DesempenhoVendedor `json:"ranking_vendedores"`
}

type dadosLoja struct {
	loja       entity.Loja
	vendas     []*entity.Venda
	produtos   []*entity.Produto
	vendedores []*entity.Vendedor
	err        error
}

// GerarResumo monta o consolidado de hoje, do mês e do ano corrente.
//
// O filtro de exclusão é um só — status ativa e forma de pagamento
// diferente de pendente_caixa — aplicado na leitura do ledger e portanto
// idêntico em receita, ranking, meta e ticket médio. Venda aguardando
// caixa não aparece em métrica nenhuma.
func (m *Motor) GerarResumo(ctx context.Context) (*Resumo, error) {
	agora := m.agora()
	inicioAno := time.Date(agora.Year(), 1, 1, 0, 0, 0, 0, agora.Location())
	inicioMes := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	inicioHoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	fim := inicioHoje.Add(24*time.Hour - time.Nanosecond)

	// Uma goroutine por loja: as consultas são independentes.
	ch := make(chan dadosLoja, len(entity.LojasFisicas))
	for _, loja := range entity.LojasFisicas {
		go func(loja entity.Loja) {
			ch <- m.carregarLoja(ctx, loja, inicioAno, fim)
		}(loja)
	}
	porLoja := make(map[entity.Loja]dadosLoja, len(entity.LojasFisicas))
	for range entity.LojasFisicas {
		d := <-ch
		if d.err != nil {
			return nil, d.err
		}
		porLoja[d.loja] = d
	}

	resumo := &Resumo{
		ReceitaHoje:  decimal.Zero,
		ReceitaMes:   decimal.Zero,
		ReceitaAno:   decimal.Zero,
		TicketMedio:  decimal.Zero,
		ValorEstoque: decimal.Zero,
	}
	vendasMesTotal := 0

	for _, loja := range entity.LojasFisicas {
		d := porLoja[loja]
		rl := ResumoLoja{
			Loja:         loja,
			ReceitaHoje:  decimal.Zero,
			ReceitaMes:   decimal.Zero,
			ReceitaAno:   decimal.Zero,
			ValorEstoque: decimal.Zero,
		}
		for _, v := range d.vendas {
			rl.ReceitaAno = rl.ReceitaAno.Add(v.ValorFinal)
			if !v.DataVenda.Before(inicioMes) {
				rl.ReceitaMes = rl.ReceitaMes.Add(v.ValorFinal)
				rl.VendasMes++
			}
			if !v.DataVenda.Before(inicioHoje) {
				rl.ReceitaHoje = rl.ReceitaHoje.Add(v.ValorFinal)
			}
		}
		for _, p := range d.produtos {
			rl.ProdutosAtivos++
			rl.ValorEstoque = rl.ValorEstoque.Add(p.PrecoVenda.Mul(decimal.NewFromInt(int64(p.EstoqueAtual))))
			if p.EstoqueAtual < limiarEstoqueBaixo {
				rl.EstoqueBaixo++
			}
		}
		resumo.PorLoja = append(resumo.PorLoja, rl)
		resumo.ReceitaHoje = resumo.ReceitaHoje.Add(rl.ReceitaHoje)
		resumo.ReceitaMes = resumo.ReceitaMes.Add(rl.ReceitaMes)
		resumo.ReceitaAno = resumo.ReceitaAno.Add(rl.ReceitaAno)
		resumo.ValorEstoque = resumo.ValorEstoque.Add(rl.ValorEstoque)
		vendasMesTotal += rl.VendasMes

		resumo.Ranking = append(resumo.Ranking, rankingDaLoja(d, inicioMes)...)
	}

	if vendasMesTotal > 0 {
		resumo.TicketMedio = resumo.ReceitaMes.Div(decimal.NewFromInt(int64(vendasMesTotal))).Round(2)
	}
	// Ordenação estável: empates mantêm a ordem de consulta (tatuape, mogi).
	sort.SliceStable(resumo.Ranking, func(i, j int) bool {
		return resumo.Ranking[i].TotalVendas.GreaterThan(resumo.Ranking[j].TotalVendas)
	})
	return resumo, nil
}

// ReceitaVendedorMes receita do mês corrente de um vendedor
// (mesmo filtro de exclusão do consolidado).
func (m *Motor) ReceitaVendedorMes(ctx context.Context, loja entity.Loja, vendedorNome string) (decimal.Decimal, error) {
	adapter := m.lojas.Get(loja)
	if adapter == nil {
		return decimal.Zero, fmt.Errorf("loja %s não registrada", loja)
	}
	agora := m.agora()
	inicioMes := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	vendas, err := adapter.Vendas().List(ctx, repository.FiltroVendas{
		Inicio:            inicioMes,
		Fim:               agora,
		VendedorNome:      vendedorNome,
		ExcluirPendentes:  true,
		ExcluirCanceladas: true,
	})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range vendas {
		total = total.Add(v.ValorFinal)
	}
	return total, nil
}

func (m *Motor) carregarLoja(ctx context.Context, loja entity.Loja, inicio, fim time.Time) dadosLoja {
	adapter := m.lojas.Get(loja)
	d := dadosLoja{loja: loja}
	if adapter == nil {
		d.err = fmt.Errorf("loja %s não registrada", loja)
		return d
	}
	d.vendas, d.err = adapter.Vendas().List(ctx, repository.FiltroVendas{
		Inicio:            inicio,
		Fim:               fim,
		ExcluirPendentes:  true,
		ExcluirCanceladas: true,
	})
	if d.err != nil {
		d.err = fmt.Errorf("vendas de %s: %w", loja, d.err)
		return d
	}
	d.produtos, d.err = adapter.Produtos().ListAtivos(ctx)
	if d.err != nil {
		d.err = fmt.Errorf("produtos de %s: %w", loja, d.err)
		return d
	}
	d.vendedores, d.err = adapter.Vendedores().ListAtivos(ctx)
	if d.err != nil {
		d.err = fmt.Errorf("vendedores de %s: %w", loja, d.err)
	}
	return d
}

// rankingDaLoja agrupa as vendas do mês por vendedor cadastrado na loja.
func rankingDaLoja(d dadosLoja, inicioMes time.Time) []DesempenhoVendedor {
	var ranking []DesempenhoVendedor
	for _, vend := range d.vendedores {
		if !strings.Contains(vend.Tipo, "vendedor") {
			continue
		}
		total := decimal.Zero
		qtd := 0
		for _, v := range d.vendas {
			if v.VendedorNome == vend.Nome && !v.DataVenda.Before(inicioMes) {
				total = total.Add(v.ValorFinal)
				qtd++
			}
		}
		desempenho := DesempenhoVendedor{
			Nome:             vend.Nome,
			Loja:             d.loja,
			TotalVendas:      total,
			QuantidadeVendas: qtd,
			TicketMedio:      decimal.Zero,
			Meta:             vend.MetaMensal,
			MetaAtingida:     decimal.Zero,
		}
		if qtd > 0 {
			desempenho.TicketMedio = total.Div(decimal.NewFromInt(int64(qtd))).Round(2)
		}
		// Meta zero: atingimento indefinido, reportado como 0%.
		if vend.MetaMensal.IsPositive() {
			desempenho.MetaAtingida = total.Div(vend.MetaMensal).Mul(decimal.NewFromInt(100)).Round(1)
		}
		ranking = append(ranking, desempenho)
	}
	return ranking
}
