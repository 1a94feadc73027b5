package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/carrinho"
	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

// CarrinhoHandler carrinho em memória do vendedor autenticado (protegido).
type CarrinhoHandler struct {
	sessoes *carrinho.Sessoes
	lojas   repository.Lojas
}

// NewCarrinhoHandler constrói o handler.
func NewCarrinhoHandler(sessoes *carrinho.Sessoes, lojas repository.Lojas) *CarrinhoHandler {
	return &CarrinhoHandler{sessoes: sessoes, lojas: lojas}
}

// Get godoc
// @Summary      Carrinho atual do vendedor
// @Tags         carrinho
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CarrinhoResponse
// @Router       /api/carrinho [get]
func (h *CarrinhoHandler) Get(c *fiber.Ctx) error {
	sessao := h.sessoes.Obter(GetVendedorNome(c))
	return c.JSON(dto.FromItens(sessao.Itens()))
}

// AdicionarItem godoc
// @Summary      Adicionar produto ao carrinho pelo código
// @Tags         carrinho
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdicionarItemRequest  true  "Código do produto, loja e quantidade"
// @Success      200   {object}  dto.CarrinhoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/carrinho/itens [post]
func (h *CarrinhoHandler) AdicionarItem(c *fiber.Ctx) error {
	var in dto.AdicionarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo é obrigatório"})
	}
	if in.Quantidade <= 0 {
		in.Quantidade = 1
	}
	// Vendedor de loja física adiciona do catálogo dela; o canal online
	// escolhe a loja linha a linha (a origem fica gravada na linha).
	lojaNome := in.Loja
	if lojaNome == "" {
		lojaNome = GetLoja(c)
	}
	loja, ok := entity.ParseLoja(lojaNome)
	if !ok || !loja.Fisica() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "loja deve ser tatuape ou mogi"})
	}
	if tokenLoja, ok := entity.ParseLoja(GetLoja(c)); ok && tokenLoja.Fisica() && loja != tokenLoja {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "vendedor de " + string(tokenLoja) + " adiciona apenas produtos da própria loja"})
	}
	produto, err := h.lojas.Get(loja).Produtos().GetByCodigo(c.Context(), in.Codigo)
	if err != nil {
		return respondErro(c, err)
	}
	if produto == nil {
		return respondErro(c, domain.ErrNotFound)
	}
	sessao := h.sessoes.Obter(GetVendedorNome(c))
	if err := sessao.Adicionar(produto, in.Quantidade); err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromItens(sessao.Itens()))
}

// AlterarQuantidade godoc
// @Summary      Alterar a quantidade de uma linha (zero remove)
// @Tags         carrinho
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produtoId  path  string  true  "ID do produto"
// @Param        body  body  dto.AlterarQuantidadeRequest  true  "Nova quantidade"
// @Success      200   {object}  dto.CarrinhoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/carrinho/itens/{produtoId} [put]
func (h *CarrinhoHandler) AlterarQuantidade(c *fiber.Ctx) error {
	var in dto.AlterarQuantidadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	sessao := h.sessoes.Obter(GetVendedorNome(c))
	if err := sessao.AlterarQuantidade(c.Params("produtoId"), in.Quantidade); err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.FromItens(sessao.Itens()))
}

// RemoverItem godoc
// @Summary      Remover uma linha do carrinho
// @Tags         carrinho
// @Security     Bearer
// @Produce      json
// @Param        produtoId  path  string  true  "ID do produto"
// @Success      200  {object}  dto.CarrinhoResponse
// @Router       /api/carrinho/itens/{produtoId} [delete]
func (h *CarrinhoHandler) RemoverItem(c *fiber.Ctx) error {
	sessao := h.sessoes.Obter(GetVendedorNome(c))
	sessao.Remover(c.Params("produtoId"))
	return c.JSON(dto.FromItens(sessao.Itens()))
}

// Descartar godoc
// @Summary      Descartar o carrinho inteiro (sem efeito em loja nenhuma)
// @Tags         carrinho
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/carrinho [delete]
func (h *CarrinhoHandler) Descartar(c *fiber.Ctx) error {
	h.sessoes.Descartar(GetVendedorNome(c))
	return c.JSON(dto.MessageResponse{Message: "carrinho descartado"})
}
