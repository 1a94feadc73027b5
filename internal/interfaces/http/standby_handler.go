package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/carrinho"
	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/application/fulfillment"
	"github.com/jhoicas/pdv-multiloja/internal/application/standby"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

// StandbyHandler fila de espera do vendedor autenticado (protegido).
type StandbyHandler struct {
	fila    *standby.Fila
	sessoes *carrinho.Sessoes
	engine  *fulfillment.Engine
}

// NewStandbyHandler constrói o handler.
func NewStandbyHandler(fila *standby.Fila, sessoes *carrinho.Sessoes, engine *fulfillment.Engine) *StandbyHandler {
	return &StandbyHandler{fila: fila, sessoes: sessoes, engine: engine}
}

// lojaToken devolve a loja do token ou erro de validação.
func lojaToken(c *fiber.Ctx) (entity.Loja, error) {
	loja, ok := entity.ParseLoja(GetLoja(c))
	if !ok {
		return "", domain.ErrValidacao
	}
	return loja, nil
}

// Enviar godoc
// @Summary      Enviar o carrinho atual para a fila de espera
// @Tags         standby
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarStandbyRequest  true  "Dados do cliente"
// @Success      201   {object}  dto.StandbyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/standby [post]
func (h *StandbyHandler) Enviar(c *fiber.Ctx) error {
	var in dto.EnviarStandbyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	loja, err := lojaToken(c)
	if err != nil {
		return respondErro(c, err)
	}
	vendedor := GetVendedorNome(c)
	sessao := h.sessoes.Obter(vendedor)

	venda, err := h.fila.Enviar(c.Context(), standby.Envio{
		Loja:            loja,
		VendedorNome:    vendedor,
		ClienteNome:     in.ClienteNome,
		ClienteTelefone: in.ClienteTelefone,
		ClienteCPF:      in.ClienteCPF,
		ClienteCidade:   in.ClienteCidade,
		ClienteEndereco: in.ClienteEndereco,
		OndeConheceu:    in.OndeConheceu,
		TipoEnvio:       in.TipoEnvio,
		Itens:           sessao.Itens(),
		Observacoes:     in.Observacoes,
	})
	if err != nil {
		return respondErro(c, err)
	}
	// Só limpa o carrinho depois do envio confirmado.
	sessao.Limpar()
	return c.Status(fiber.StatusCreated).JSON(dto.FromStandby(venda))
}

// Listar godoc
// @Summary      Listar a fila de espera da loja
// @Tags         standby
// @Security     Bearer
// @Produce      json
// @Param        loja      query  string  false  "tatuape|mogi (default: loja do token)"
// @Param        vendedor  query  string  false  "apenas entradas deste vendedor"
// @Success      200  {array}  dto.StandbyResponse
// @Router       /api/standby [get]
func (h *StandbyHandler) Listar(c *fiber.Ctx) error {
	nome := c.Query("loja", GetLoja(c))
	loja, ok := entity.ParseLoja(nome)
	if !ok || !loja.Fisica() {
		loja = entity.LojaPadrao
	}
	list, err := h.fila.Listar(c.Context(), loja, repository.FiltroStandby{VendedorNome: c.Query("vendedor")})
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromStandbyList(list))
}

// Cancelar godoc
// @Summary      Cancelar uma entrada da fila (sem efeito em ledger ou estoque)
// @Tags         standby
// @Security     Bearer
// @Produce      json
// @Param        loja  path  string  true  "tatuape|mogi"
// @Param        id    path  string  true  "ID da entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/standby/{loja}/{id} [delete]
func (h *StandbyHandler) Cancelar(c *fiber.Ctx) error {
	loja, ok := entity.ParseLoja(c.Params("loja"))
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	if err := h.fila.Cancelar(c.Context(), loja, c.Params("id")); err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "standby cancelado"})
}

// Reeditar godoc
// @Summary      Retomar uma entrada da fila para edição (a entrada sai da fila)
// @Tags         standby
// @Security     Bearer
// @Produce      json
// @Param        loja  path  string  true  "tatuape|mogi"
// @Param        id    path  string  true  "ID da entrada"
// @Success      200  {object}  dto.CarrinhoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/standby/{loja}/{id}/editar [post]
func (h *StandbyHandler) Reeditar(c *fiber.Ctx) error {
	loja, ok := entity.ParseLoja(c.Params("loja"))
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	_, itens, err := h.fila.Reeditar(c.Context(), loja, c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	sessao := h.sessoes.Obter(GetVendedorNome(c))
	sessao.Substituir(itens)
	return c.JSON(dto.FromItens(sessao.Itens()))
}

// FinalizarDireto godoc
// @Summary      Finalizar uma entrada na própria loja (venda nasce pendente de caixa)
// @Tags         standby
// @Security     Bearer
// @Produce      json
// @Param        loja  path  string  true  "tatuape|mogi"
// @Param        id    path  string  true  "ID da entrada"
// @Success      200  {object}  dto.VendaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/standby/{loja}/{id}/finalizar [post]
func (h *StandbyHandler) FinalizarDireto(c *fiber.Ctx) error {
	loja, ok := entity.ParseLoja(c.Params("loja"))
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	venda, err := h.engine.FinalizarDireto(c.Context(), loja, c.Params("id"), GetUserID(c))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromVenda(venda))
}
