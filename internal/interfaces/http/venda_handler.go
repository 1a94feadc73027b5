package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/application/fulfillment"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// VendaHandler operações sobre o ledger de vendas (protegido).
type VendaHandler struct {
	engine *fulfillment.Engine
}

// NewVendaHandler constrói o handler.
func NewVendaHandler(engine *fulfillment.Engine) *VendaHandler {
	return &VendaHandler{engine: engine}
}

// Repetir godoc
// @Summary      Repetir uma finalização que falhou no meio
// @Description  Reexecuta a sequência com o mesmo número de venda. Etapas já
// @Description  gravadas são detectadas e puladas, então repetir é seguro.
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RepetirFinalizacaoRequest  true  "Identificação da finalização"
// @Success      200   {object}  dto.VendaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/vendas/repetir [post]
func (h *VendaHandler) Repetir(c *fiber.Ctx) error {
	var in dto.RepetirFinalizacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	loja, ok := entity.ParseLoja(in.Loja)
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	venda, err := h.engine.Repetir(c.Context(), fulfillment.Repeticao{
		LojaFila:      loja,
		StandbyID:     in.StandbyID,
		NumeroVenda:   in.NumeroVenda,
		SeparadorNome: in.SeparadorNome,
		UsuarioID:     GetUserID(c),
	})
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromVenda(venda))
}
