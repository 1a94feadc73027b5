package carrinho

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

func camiseta(estoque int) *entity.Produto {
	return &entity.Produto{
		ID:           "p1",
		Loja:         entity.LojaTatuape,
		Codigo:       "CAM001",
		Nome:         "Camiseta Azul",
		PrecoVenda:   decimal.NewFromInt(50),
		EstoqueAtual: estoque,
		Ativo:        true,
	}
}

func TestSessao_AdicionarAgregaNaMesmaLinha(t *testing.T) {
	s := &Sessao{}
	p := camiseta(10)
	require.NoError(t, s.Adicionar(p, 2))
	require.NoError(t, s.Adicionar(p, 3))

	itens := s.Itens()
	require.Len(t, itens, 1)
	assert.Equal(t, 5, itens[0].Quantidade)
	assert.Equal(t, entity.LojaTatuape, itens[0].LojaOrigem)
	assert.True(t, s.Total().Equal(decimal.NewFromInt(250)))
}

func TestSessao_AdicionarRespeitaEstoqueConhecido(t *testing.T) {
	s := &Sessao{}
	p := camiseta(3)
	require.NoError(t, s.Adicionar(p, 3))
	assert.ErrorIs(t, s.Adicionar(p, 1), domain.ErrEstoqueInsuficiente)
}

func TestSessao_AdicionarValidacoes(t *testing.T) {
	s := &Sessao{}
	assert.ErrorIs(t, s.Adicionar(nil, 1), domain.ErrValidacao)
	assert.ErrorIs(t, s.Adicionar(camiseta(5), 0), domain.ErrValidacao)

	inativo := camiseta(5)
	inativo.Ativo = false
	assert.ErrorIs(t, s.Adicionar(inativo, 1), domain.ErrNotFound)
}

func TestSessao_AlterarQuantidadeZeroRemove(t *testing.T) {
	s := &Sessao{}
	require.NoError(t, s.Adicionar(camiseta(10), 2))
	require.NoError(t, s.AlterarQuantidade("p1", 0))
	assert.True(t, s.Vazio())
}

func TestSessao_AlterarQuantidadeInexistente(t *testing.T) {
	s := &Sessao{}
	assert.ErrorIs(t, s.AlterarQuantidade("nao-existe", 2), domain.ErrNotFound)
}

func TestSessao_ItensDevolveCopia(t *testing.T) {
	s := &Sessao{}
	require.NoError(t, s.Adicionar(camiseta(10), 2))
	itens := s.Itens()
	itens[0].Quantidade = 99

	assert.Equal(t, 2, s.Itens()[0].Quantidade, "mutação da cópia não vaza para a sessão")
}

func TestSessao_SubstituirELimpar(t *testing.T) {
	s := &Sessao{}
	require.NoError(t, s.Adicionar(camiseta(10), 2))
	s.Substituir([]entity.ItemCarrinho{
		{ProdutoID: "x", Codigo: "X1", Quantidade: 1, PrecoVenda: decimal.NewFromInt(30), LojaOrigem: entity.LojaMogi},
	})
	itens := s.Itens()
	require.Len(t, itens, 1)
	assert.Equal(t, "x", itens[0].ProdutoID)

	s.Limpar()
	assert.True(t, s.Vazio())
}

// Carrinhos são isolados por vendedor: o descarte de um não toca o outro.
func TestSessoes_IsolamentoPorVendedor(t *testing.T) {
	reg := NewSessoes()
	require.NoError(t, reg.Obter("maria").Adicionar(camiseta(10), 1))
	require.NoError(t, reg.Obter("joana").Adicionar(camiseta(10), 2))

	reg.Descartar("maria")
	assert.True(t, reg.Obter("maria").Vazio())
	assert.Equal(t, 2, reg.Obter("joana").Itens()[0].Quantidade)
}
