package http

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/application/fulfillment"
	"github.com/jhoicas/pdv-multiloja/internal/application/standby"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

// SeparacaoHandler fila e histórico de separação de pedidos online (protegido).
type SeparacaoHandler struct {
	fila   *standby.Fila
	engine *fulfillment.Engine
	lojas  repository.Lojas
}

// NewSeparacaoHandler constrói o handler.
func NewSeparacaoHandler(fila *standby.Fila, engine *fulfillment.Engine, lojas repository.Lojas) *SeparacaoHandler {
	return &SeparacaoHandler{fila: fila, engine: engine, lojas: lojas}
}

// Listar godoc
// @Summary      Listar pedidos online pendentes de separação (ambas as lojas)
// @Tags         separacao
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StandbyResponse
// @Router       /api/separacao [get]
func (h *SeparacaoHandler) Listar(c *fiber.Ctx) error {
	pedidos, err := h.fila.ListarSeparacao(c.Context())
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromStandbyList(pedidos))
}

// Finalizar godoc
// @Summary      Finalizar a separação de um pedido online
// @Tags         separacao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        loja  path  string  true  "loja dona da fila (tatuape|mogi)"
// @Param        id    path  string  true  "ID da entrada"
// @Param        body  body  dto.FinalizarSeparacaoRequest  true  "Nome do separador"
// @Success      200   {object}  dto.VendaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/separacao/{loja}/{id}/finalizar [post]
func (h *SeparacaoHandler) Finalizar(c *fiber.Ctx) error {
	loja, ok := entity.ParseLoja(c.Params("loja"))
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	var in dto.FinalizarSeparacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	separador := in.SeparadorNome
	if separador == "" {
		separador = GetVendedorNome(c)
	}
	if separador == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "separador_nome é obrigatório"})
	}
	venda, err := h.engine.FinalizarSeparacao(c.Context(), loja, c.Params("id"), separador, GetUserID(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromVenda(venda))
}

// Historico godoc
// @Summary      Histórico de vendas separadas (ambas as lojas, mais recentes primeiro)
// @Tags         separacao
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VendaResponse
// @Router       /api/separacao/historico [get]
func (h *SeparacaoHandler) Historico(c *fiber.Ctx) error {
	var todas []*entity.Venda
	for _, loja := range entity.LojasFisicas {
		vendas, err := h.lojas.Get(loja).Vendas().List(c.Context(), repository.FiltroVendas{
			ObservacoesLike: entity.ObsPrefixoSeparadoPor,
		})
		if err != nil {
			return respondErro(c, err)
		}
		todas = append(todas, vendas...)
	}
	sort.SliceStable(todas, func(i, j int) bool {
		return todas[i].DataVenda.After(todas[j].DataVenda)
	})
	return c.JSON(dto.FromVendaList(todas))
}
