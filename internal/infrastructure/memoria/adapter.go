// Package memoria implementa os adapters de loja em memória, com a mesma
// semântica de erro dos adapters PostgreSQL (baixa condicional, número de
// venda único, delete de standby ausente). Usado nos testes de aplicação
// e em desenvolvimento local sem banco.
package memoria

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

var _ repository.LojaAdapter = (*Adapter)(nil)

// Adapter loja em memória. Todos os métodos são seguros para uso
// concorrente; cada chamada é uma operação isolada, como nos adapters
// remotos.
type Adapter struct {
	loja entity.Loja

	mu         sync.Mutex
	produtos   map[string]*entity.Produto
	clientes   map[string]*entity.Cliente // chave: telefone
	standby    map[string]*entity.VendaStandby
	vendas     map[string]*entity.Venda // chave: numero_venda
	itens      map[string][]*entity.ItemVenda
	movimentos map[string][]*entity.MovimentoEstoque
	vendedores []*entity.Vendedor

	// Falhas injetáveis por operação, para exercitar falha parcial.
	FalhaCriarVenda    error
	FalhaCriarItens    error
	FalhaBaixarEstoque error
	FalhaMovimento     error
	FalhaDeleteStandby error

	// ItensAntesDaFalha itens gravados antes de FalhaCriarItens disparar
	// (lote interrompido no meio).
	ItensAntesDaFalha int
}

// NewAdapter constrói a loja em memória vazia.
func NewAdapter(loja entity.Loja) *Adapter {
	return &Adapter{
		loja:       loja,
		produtos:   make(map[string]*entity.Produto),
		clientes:   make(map[string]*entity.Cliente),
		standby:    make(map[string]*entity.VendaStandby),
		vendas:     make(map[string]*entity.Venda),
		itens:      make(map[string][]*entity.ItemVenda),
		movimentos: make(map[string][]*entity.MovimentoEstoque),
	}
}

func (a *Adapter) Loja() entity.Loja                                 { return a.loja }
func (a *Adapter) Produtos() repository.ProdutoRepository            { return (*produtoMem)(a) }
func (a *Adapter) Clientes() repository.ClienteRepository            { return (*clienteMem)(a) }
func (a *Adapter) Standby() repository.StandbyRepository             { return (*standbyMem)(a) }
func (a *Adapter) Vendas() repository.VendaRepository                { return (*vendaMem)(a) }
func (a *Adapter) Movimentos() repository.MovimentoEstoqueRepository { return (*movimentoMem)(a) }
func (a *Adapter) Vendedores() repository.VendedorRepository         { return (*vendedorMem)(a) }

// SeedProduto registra um produto no catálogo.
func (a *Adapter) SeedProduto(p *entity.Produto) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := *p
	cp.Loja = a.loja
	a.produtos[cp.ID] = &cp
}

// SeedVendedor registra um funcionário.
func (a *Adapter) SeedVendedor(v *entity.Vendedor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cv := *v
	cv.Loja = a.loja
	a.vendedores = append(a.vendedores, &cv)
}

// EstoqueDe devolve o estoque atual de um produto (inspeção nos testes).
func (a *Adapter) EstoqueDe(produtoID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.produtos[produtoID]; ok {
		return p.EstoqueAtual
	}
	return 0
}

// ── Produtos ──────────────────────────────────────────────────────────────────

type produtoMem Adapter

func (m *produtoMem) GetByID(_ context.Context, id string) (*entity.Produto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.produtos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *produtoMem) GetByCodigo(_ context.Context, codigo string) (*entity.Produto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.produtos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *produtoMem) ListAtivos(_ context.Context) ([]*entity.Produto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*entity.Produto
	for _, p := range m.produtos {
		if p.Ativo {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nome < list[j].Nome })
	return list, nil
}

// BaixarEstoque baixa e audita sob o mesmo lock: ou os dois acontecem,
// ou nenhum, como a transação do adapter PostgreSQL. Idempotente por
// (VendaID, ProdutoID).
func (m *produtoMem) BaixarEstoque(_ context.Context, mov *entity.MovimentoEstoque) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FalhaBaixarEstoque != nil {
		return m.FalhaBaixarEstoque
	}
	qtd := -mov.QuantidadeMovimentada
	if qtd <= 0 || mov.ProdutoID == "" || mov.VendaID == "" {
		return domain.ErrValidacao
	}
	for _, gravado := range m.movimentos[mov.VendaID] {
		if gravado.ProdutoID == mov.ProdutoID {
			return nil
		}
	}
	p, ok := m.produtos[mov.ProdutoID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.EstoqueAtual < qtd {
		return domain.ErrEstoqueInsuficiente
	}
	// A auditoria falhando, a baixa não é aplicada (rollback do remoto).
	if m.FalhaMovimento != nil {
		return m.FalhaMovimento
	}
	mov.QuantidadeAnterior = p.EstoqueAtual
	p.EstoqueAtual -= qtd
	mov.QuantidadeAtual = p.EstoqueAtual

	cm := *mov
	if cm.ID == "" {
		cm.ID = uuid.New().String()
	}
	if cm.CreatedAt.IsZero() {
		cm.CreatedAt = time.Now()
	}
	cm.Loja = m.loja
	m.movimentos[cm.VendaID] = append(m.movimentos[cm.VendaID], &cm)
	return nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type clienteMem Adapter

func (m *clienteMem) GetByTelefone(_ context.Context, telefone string) (*entity.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clientes[telefone]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (m *clienteMem) Upsert(_ context.Context, cliente *entity.Cliente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cliente.CPF != "" {
		for tel, c := range m.clientes {
			if c.CPF == cliente.CPF && tel != cliente.Telefone {
				return domain.ErrDuplicado
			}
		}
	}
	existente, ok := m.clientes[cliente.Telefone]
	if !ok {
		cc := *cliente
		if cc.ID == "" {
			cc.ID = uuid.New().String()
		}
		cc.Loja = m.loja
		m.clientes[cliente.Telefone] = &cc
		return nil
	}
	existente.NomeCompleto = cliente.NomeCompleto
	if cliente.CPF != "" {
		existente.CPF = cliente.CPF
	}
	if cliente.Cidade != "" {
		existente.Cidade = cliente.Cidade
	}
	if cliente.Endereco != "" {
		existente.Endereco = cliente.Endereco
	}
	if cliente.OndeConheceu != "" {
		existente.OndeConheceu = cliente.OndeConheceu
	}
	return nil
}

// ── Standby ───────────────────────────────────────────────────────────────────

type standbyMem Adapter

func (m *standbyMem) Create(_ context.Context, venda *entity.VendaStandby) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cv := *venda
	if cv.ID == "" {
		cv.ID = uuid.New().String()
	}
	cv.Loja = m.loja
	m.standby[cv.ID] = &cv
	return cv.ID, nil
}

func (m *standbyMem) GetByID(_ context.Context, id string) (*entity.VendaStandby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.standby[id]
	if !ok {
		return nil, nil
	}
	cv := *v
	return &cv, nil
}

func (m *standbyMem) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FalhaDeleteStandby != nil {
		return m.FalhaDeleteStandby
	}
	if _, ok := m.standby[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.standby, id)
	return nil
}

func (m *standbyMem) List(_ context.Context, filtro repository.FiltroStandby) ([]*entity.VendaStandby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*entity.VendaStandby
	for _, v := range m.standby {
		if filtro.VendedorNome != "" && v.VendedorNome != filtro.VendedorNome {
			continue
		}
		if filtro.SomenteOnline && !v.Online() {
			continue
		}
		cv := *v
		list = append(list, &cv)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *standbyMem) FindByTelefoneOutroVendedor(_ context.Context, telefone, vendedorNome string) (*entity.VendaStandby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.standby {
		if v.ClienteTelefone == telefone && v.VendedorNome != vendedorNome {
			cv := *v
			return &cv, nil
		}
	}
	return nil, nil
}

// ── Vendas ────────────────────────────────────────────────────────────────────

type vendaMem Adapter

func (m *vendaMem) Create(_ context.Context, venda *entity.Venda) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FalhaCriarVenda != nil {
		return m.FalhaCriarVenda
	}
	if _, ok := m.vendas[venda.NumeroVenda]; ok {
		return domain.ErrDuplicado
	}
	cv := *venda
	if cv.ID == "" {
		cv.ID = uuid.New().String()
	}
	cv.Loja = m.loja
	m.vendas[cv.NumeroVenda] = &cv
	venda.ID = cv.ID
	return nil
}

func (m *vendaMem) GetByNumero(_ context.Context, numero string) (*entity.Venda, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendas[numero]
	if !ok {
		return nil, nil
	}
	cv := *v
	return &cv, nil
}

func (m *vendaMem) CreateItens(_ context.Context, itens []*entity.ItemVenda) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range itens {
		if m.FalhaCriarItens != nil && i >= m.ItensAntesDaFalha {
			return m.FalhaCriarItens
		}
		ci := *item
		if ci.ID == "" {
			ci.ID = uuid.New().String()
		}
		m.itens[ci.VendaID] = append(m.itens[ci.VendaID], &ci)
	}
	return nil
}

func (m *vendaMem) ListItens(_ context.Context, vendaID string) ([]*entity.ItemVenda, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*entity.ItemVenda, 0, len(m.itens[vendaID]))
	for _, item := range m.itens[vendaID] {
		ci := *item
		list = append(list, &ci)
	}
	return list, nil
}

func (m *vendaMem) List(_ context.Context, filtro repository.FiltroVendas) ([]*entity.Venda, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*entity.Venda
	for _, v := range m.vendas {
		if !filtro.Inicio.IsZero() && v.DataVenda.Before(filtro.Inicio) {
			continue
		}
		if !filtro.Fim.IsZero() && v.DataVenda.After(filtro.Fim) {
			continue
		}
		if filtro.VendedorNome != "" && v.VendedorNome != filtro.VendedorNome {
			continue
		}
		if filtro.ObservacoesLike != "" && !strings.Contains(v.Observacoes, filtro.ObservacoesLike) {
			continue
		}
		if filtro.ExcluirPendentes && v.FormaPagamento == entity.FormaPagamentoPendenteCaixa {
			continue
		}
		if filtro.ExcluirCanceladas && v.Status == entity.StatusVendaCancelada {
			continue
		}
		cv := *v
		list = append(list, &cv)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DataVenda.After(list[j].DataVenda) })
	return list, nil
}

// ── Movimentos ────────────────────────────────────────────────────────────────

type movimentoMem Adapter

func (m *movimentoMem) ListByVenda(_ context.Context, vendaID string) ([]*entity.MovimentoEstoque, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*entity.MovimentoEstoque, 0, len(m.movimentos[vendaID]))
	for _, mov := range m.movimentos[vendaID] {
		cm := *mov
		list = append(list, &cm)
	}
	return list, nil
}

// ── Vendedores ────────────────────────────────────────────────────────────────

type vendedorMem Adapter

func (m *vendedorMem) ListAtivos(_ context.Context) ([]*entity.Vendedor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*entity.Vendedor
	for _, v := range m.vendedores {
		if v.Ativo {
			cv := *v
			list = append(list, &cv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nome < list[j].Nome })
	return list, nil
}
