// Package dto define os contratos JSON da API HTTP.
package dto

// ErrorResponse corpo padrão de erro.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// NumeroVenda presente apenas em falha parcial de finalização:
	// é a chave para repetir a sequência ou reconciliar manualmente.
	NumeroVenda string `json:"numero_venda,omitempty"`
}

// MessageResponse corpo padrão de confirmação.
type MessageResponse struct {
	Message string `json:"message"`
}
