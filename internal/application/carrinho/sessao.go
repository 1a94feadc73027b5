// Package carrinho mantém o carrinho em montagem de cada vendedor.
// Estado exclusivamente em memória: nada é persistido até o envio
// para standby, e o descarte não tem efeito em loja nenhuma.
package carrinho

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// Sessao carrinho de um único vendedor.
type Sessao struct {
	mu    sync.Mutex
	itens []entity.ItemCarrinho
}

// Adicionar acrescenta qtd unidades do produto ao carrinho, agregando na
// linha existente quando o produto já está nele. A guarda usa o último
// estoque conhecido; a checagem autoritativa acontece na finalização.
func (s *Sessao) Adicionar(produto *entity.Produto, qtd int) error {
	if produto == nil || qtd <= 0 {
		return domain.ErrValidacao
	}
	if !produto.Ativo {
		return domain.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.itens {
		if s.itens[i].ProdutoID == produto.ID {
			if s.itens[i].Quantidade+qtd > produto.EstoqueAtual {
				return domain.ErrEstoqueInsuficiente
			}
			s.itens[i].Quantidade += qtd
			s.itens[i].EstoqueAtual = produto.EstoqueAtual
			return nil
		}
	}
	if qtd > produto.EstoqueAtual {
		return domain.ErrEstoqueInsuficiente
	}
	s.itens = append(s.itens, entity.ItemCarrinho{
		ProdutoID:    produto.ID,
		Codigo:       produto.Codigo,
		Nome:         produto.Nome,
		Cor:          produto.Cor,
		Tamanho:      produto.Tamanho,
		Quantidade:   qtd,
		PrecoVenda:   produto.PrecoVenda,
		EstoqueAtual: produto.EstoqueAtual,
		LojaOrigem:   produto.Loja,
	})
	return nil
}

// AlterarQuantidade define a quantidade de uma linha. Quantidade zero ou
// negativa remove a linha (comportamento do balcão: diminuir até sumir).
func (s *Sessao) AlterarQuantidade(produtoID string, qtd int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.itens {
		if s.itens[i].ProdutoID != produtoID {
			continue
		}
		if qtd <= 0 {
			s.itens = append(s.itens[:i], s.itens[i+1:]...)
			return nil
		}
		if qtd > s.itens[i].EstoqueAtual {
			return domain.ErrEstoqueInsuficiente
		}
		s.itens[i].Quantidade = qtd
		return nil
	}
	return domain.ErrNotFound
}

// Remover tira a linha do produto do carrinho.
func (s *Sessao) Remover(produtoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.itens {
		if s.itens[i].ProdutoID == produtoID {
			s.itens = append(s.itens[:i], s.itens[i+1:]...)
			return
		}
	}
}

// Itens devolve uma cópia das linhas atuais.
func (s *Sessao) Itens() []entity.ItemCarrinho {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.ItemCarrinho, len(s.itens))
	copy(out, s.itens)
	return out
}

// Substituir troca o conteúdo do carrinho (retomada de um standby editado).
func (s *Sessao) Substituir(itens []entity.ItemCarrinho) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itens = make([]entity.ItemCarrinho, len(itens))
	copy(s.itens, itens)
}

// Total soma dos subtotais das linhas.
func (s *Sessao) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.TotalCarrinho(s.itens)
}

// Limpar esvazia o carrinho (envio bem-sucedido ou descarte explícito).
func (s *Sessao) Limpar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itens = nil
}

// Vazio informa se o carrinho não tem linhas.
func (s *Sessao) Vazio() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.itens) == 0
}

// Sessoes guarda o carrinho de cada vendedor, criado sob demanda.
type Sessoes struct {
	mu      sync.Mutex
	porNome map[string]*Sessao
}

// NewSessoes constrói o registro de sessões.
func NewSessoes() *Sessoes {
	return &Sessoes{porNome: make(map[string]*Sessao)}
}

// Obter devolve a sessão do vendedor, criando se necessário.
func (r *Sessoes) Obter(vendedorNome string) *Sessao {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.porNome[vendedorNome]
	if !ok {
		s = &Sessao{}
		r.porNome[vendedorNome] = s
	}
	return s
}

// Descartar joga fora a sessão do vendedor.
func (r *Sessoes) Descartar(vendedorNome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.porNome, vendedorNome)
}
