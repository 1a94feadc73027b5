package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
)

// respondErro traduz erros de domínio para status HTTP e corpo padrão.
// Falha parcial expõe o número da venda: é a chave que o cliente usa
// para repetir a finalização ou abrir reconciliação.
func respondErro(c *fiber.Ctx, err error) error {
	var parcial *domain.FalhaParcialError
	if errors.As(err, &parcial) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:        "PARTIAL_FAILURE",
			Message:     parcial.Error(),
			NumeroVenda: parcial.NumeroVenda,
		})
	}
	switch {
	case errors.Is(err, domain.ErrValidacao), errors.Is(err, domain.ErrCarrinhoVazio):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrAcessoNegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflito), errors.Is(err, domain.ErrDuplicado), errors.Is(err, domain.ErrStandbyJaReivindicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrLojaIndisponivel):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
