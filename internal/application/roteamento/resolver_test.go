package roteamento

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

func linhaDe(loja entity.Loja) entity.ItemCarrinho {
	return entity.ItemCarrinho{ProdutoID: string(loja) + "-p", Quantidade: 1, LojaOrigem: loja}
}

func TestMaioriaPorLinhas_MaioriaVence(t *testing.T) {
	r := MaioriaPorLinhas{}
	destino := r.ResolverDestino([]entity.ItemCarrinho{
		linhaDe(entity.LojaMogi),
		linhaDe(entity.LojaMogi),
		linhaDe(entity.LojaTatuape),
	})
	assert.Equal(t, entity.LojaMogi, destino)
}

func TestMaioriaPorLinhas_EmpateCaiNaLojaPadrao(t *testing.T) {
	r := MaioriaPorLinhas{}
	destino := r.ResolverDestino([]entity.ItemCarrinho{
		linhaDe(entity.LojaTatuape),
		linhaDe(entity.LojaMogi),
	})
	assert.Equal(t, entity.LojaPadrao, destino)
}

func TestMaioriaPorLinhas_CarrinhoVazioOuSemOrigemFisica(t *testing.T) {
	r := MaioriaPorLinhas{}
	assert.Equal(t, entity.LojaPadrao, r.ResolverDestino(nil))
	assert.Equal(t, entity.LojaPadrao, r.ResolverDestino([]entity.ItemCarrinho{
		{ProdutoID: "x", Quantidade: 1, LojaOrigem: entity.LojaOnline},
	}))
}

// A contagem é por linha, não por quantidade: uma linha de mogi com 10
// unidades perde para duas linhas de tatuape com 1 unidade cada.
func TestMaioriaPorLinhas_ContaLinhasNaoQuantidades(t *testing.T) {
	r := MaioriaPorLinhas{}
	destino := r.ResolverDestino([]entity.ItemCarrinho{
		{ProdutoID: "m", Quantidade: 10, LojaOrigem: entity.LojaMogi},
		{ProdutoID: "t1", Quantidade: 1, LojaOrigem: entity.LojaTatuape},
		{ProdutoID: "t2", Quantidade: 1, LojaOrigem: entity.LojaTatuape},
	})
	assert.Equal(t, entity.LojaTatuape, destino)
}

// Mesma composição, mesmo destino, sempre.
func TestMaioriaPorLinhas_Deterministico(t *testing.T) {
	r := MaioriaPorLinhas{}
	itens := []entity.ItemCarrinho{
		linhaDe(entity.LojaMogi),
		linhaDe(entity.LojaTatuape),
		linhaDe(entity.LojaMogi),
	}
	primeiro := r.ResolverDestino(itens)
	for i := 0; i < 50; i++ {
		assert.Equal(t, primeiro, r.ResolverDestino(itens))
	}
}
