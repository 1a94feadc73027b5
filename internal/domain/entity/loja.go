package entity

// Loja identifica um dos pontos de venda. Cada loja física tem banco próprio,
// sem chaves compartilhadas; "online" é um canal lógico que grava nas físicas.
type Loja string

const (
	LojaTatuape Loja = "tatuape"
	LojaMogi    Loja = "mogi"
	LojaOnline  Loja = "online"
)

// LojaPadrao recebe empates e carrinhos sem origem definida no roteamento.
const LojaPadrao = LojaTatuape

// LojasFisicas na ordem canônica de consolidação.
var LojasFisicas = []Loja{LojaTatuape, LojaMogi}

// Fisica informa se a loja tem banco próprio (tatuape e mogi).
func (l Loja) Fisica() bool {
	return l == LojaTatuape || l == LojaMogi
}

// PrefixoVenda devolve o prefixo do número de venda da loja.
// Contrato estável com os relatórios: TAT- e MOG-.
func (l Loja) PrefixoVenda() string {
	switch l {
	case LojaTatuape:
		return "TAT"
	case LojaMogi:
		return "MOG"
	default:
		return "ONL"
	}
}

// PrefixoSeparacao é usado em vendas criadas pela separação online,
// independentemente da loja de destino.
const PrefixoSeparacao = "SEP"

// ParseLoja valida um identificador de loja vindo de fora (rota, token).
func ParseLoja(s string) (Loja, bool) {
	switch Loja(s) {
	case LojaTatuape, LojaMogi, LojaOnline:
		return Loja(s), true
	}
	return "", false
}
