package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/clientes"
	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// ClienteHandler consulta do cadastro de clientes (protegido).
type ClienteHandler struct {
	registro *clientes.Registro
}

// NewClienteHandler constrói o handler.
func NewClienteHandler(registro *clientes.Registro) *ClienteHandler {
	return &ClienteHandler{registro: registro}
}

// BuscarPorTelefone godoc
// @Summary      Buscar cliente pelo telefone (pré-preenchimento do formulário)
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        telefone  path  string  true  "Telefone"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/telefone/{telefone} [get]
func (h *ClienteHandler) BuscarPorTelefone(c *fiber.Ctx) error {
	loja, ok := entity.ParseLoja(GetLoja(c))
	if !ok {
		loja = entity.LojaOnline
	}
	cliente, err := h.registro.BuscarPorTelefone(c.Context(), loja, c.Params("telefone"))
	if err != nil {
		return respondErro(c, err)
	}
	if cliente == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não cadastrado"})
	}
	return c.JSON(dto.FromCliente(cliente))
}

// VerificarConflito godoc
// @Summary      Verificar se o telefone já está em atendimento por outro vendedor
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        telefone  query  string  true  "Telefone"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clientes/conflito [get]
func (h *ClienteHandler) VerificarConflito(c *fiber.Ctx) error {
	aberta, err := h.registro.VerificarConflito(c.Context(), c.Query("telefone"), GetVendedorNome(c))
	if err != nil {
		return respondErro(c, err)
	}
	if aberta != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: "telefone em atendimento por " + aberta.VendedorNome,
		})
	}
	return c.JSON(dto.MessageResponse{Message: "telefone livre"})
}
