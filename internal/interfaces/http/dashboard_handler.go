package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/consolidado"
	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
)

// DashboardHandler métricas consolidadas para gestão (protegido, role gerente).
type DashboardHandler struct {
	motor *consolidado.Motor
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(motor *consolidado.Motor) *DashboardHandler {
	return &DashboardHandler{motor: motor}
}

// Consolidado godoc
// @Summary      Painel consolidado das lojas (receita, ranking, estoque)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  consolidado.Resumo
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/consolidado [get]
func (h *DashboardHandler) Consolidado(c *fiber.Ctx) error {
	resumo, err := h.motor.GerarResumo(c.Context())
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(resumo)
}

// ReceitaVendedorMes godoc
// @Summary      Receita do mês corrente de um vendedor
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        nome  path   string  true   "Nome do vendedor"
// @Param        loja  query  string  false  "tatuape|mogi (default: loja do token)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/vendedores/{nome}/receita-mes [get]
func (h *DashboardHandler) ReceitaVendedorMes(c *fiber.Ctx) error {
	nome := c.Params("nome")
	lojaNome := c.Query("loja", GetLoja(c))
	loja, ok := entity.ParseLoja(lojaNome)
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	total, err := h.motor.ReceitaVendedorMes(c.Context(), loja, nome)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(fiber.Map{
		"vendedor":    nome,
		"loja":        string(loja),
		"receita_mes": total,
	})
}
