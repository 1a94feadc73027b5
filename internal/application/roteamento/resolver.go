// Package roteamento decide qual loja física recebe uma venda cujo
// carrinho mistura produtos de mais de uma loja.
package roteamento

import "github.com/jhoicas/pdv-multiloja/internal/domain/entity"

// Estrategia resolve a loja de destino de um conjunto de linhas.
// Interface separada para permitir trocar a heurística (por valor,
// por divisão de linhas) sem mexer no motor de finalização.
type Estrategia interface {
	ResolverDestino(itens []entity.ItemCarrinho) entity.Loja
}

// MaioriaPorLinhas conta linhas por loja de origem: maioria estrita vence;
// empates e carrinhos sem origem física caem na loja padrão. A contagem é
// por linha, não por quantidade nem valor — heurística grosseira herdada
// do balcão, conhecida por errar em carrinhos mistos.
type MaioriaPorLinhas struct{}

// ResolverDestino devolve sempre o mesmo destino para a mesma composição.
func (MaioriaPorLinhas) ResolverDestino(itens []entity.ItemCarrinho) entity.Loja {
	contagem := make(map[entity.Loja]int, len(entity.LojasFisicas))
	for _, it := range itens {
		if it.LojaOrigem.Fisica() {
			contagem[it.LojaOrigem]++
		}
	}

	destino := entity.LojaPadrao
	melhor := contagem[entity.LojaPadrao]
	// Ordem canônica fixa: desempate determinístico a favor da loja padrão.
	for _, loja := range entity.LojasFisicas {
		if contagem[loja] > melhor {
			destino, melhor = loja, contagem[loja]
		}
	}
	return destino
}
