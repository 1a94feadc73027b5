package entity

import "time"

// Cliente registro de cliente de uma loja. O telefone é a chave de
// deduplicação (upsert por telefone); CPF, quando informado, deve ser
// único dentro da loja.
type Cliente struct {
	ID           string
	Loja         Loja
	NomeCompleto string
	Telefone     string
	CPF          string
	Cidade       string
	Endereco     string
	OndeConheceu string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
