package fulfillment

import (
	"fmt"
	"sync"
	"time"
)

// Numerador gera números de venda "{PREFIXO}-{milissegundos}".
// O formato com timestamp é contrato com os relatórios; a unicidade é
// garantida avançando o valor quando duas chamadas caem no mesmo
// milissegundo, em vez de confiar no relógio.
type Numerador struct {
	mu       sync.Mutex
	ultimoMs int64
	agora    func() time.Time
}

// NewNumerador constrói o gerador usando o relógio do sistema.
func NewNumerador() *Numerador {
	return &Numerador{agora: time.Now}
}

// Proximo devolve o próximo número para o prefixo dado.
func (n *Numerador) Proximo(prefixo string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ms := n.agora().UnixMilli()
	if ms <= n.ultimoMs {
		ms = n.ultimoMs + 1
	}
	n.ultimoMs = ms
	return fmt.Sprintf("%s-%d", prefixo, ms)
}
