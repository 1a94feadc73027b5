package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/internal/domain"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
	"github.com/jhoicas/pdv-multiloja/pkg/texto"
)

// ProdutoHandler consulta de catálogo (protegido).
type ProdutoHandler struct {
	lojas repository.Lojas
}

// NewProdutoHandler constrói o handler.
func NewProdutoHandler(lojas repository.Lojas) *ProdutoHandler {
	return &ProdutoHandler{lojas: lojas}
}

// lojaConsulta resolve em qual catálogo buscar: query param explícito ou a
// loja do token. Canal online sem loja explícita usa a loja padrão.
func (h *ProdutoHandler) lojaConsulta(c *fiber.Ctx) (entity.Loja, error) {
	nome := c.Query("loja", GetLoja(c))
	loja, ok := entity.ParseLoja(nome)
	if !ok {
		return "", domain.ErrValidacao
	}
	if !loja.Fisica() {
		loja = entity.LojaPadrao
	}
	return loja, nil
}

// List godoc
// @Summary      Listar produtos ativos
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        loja   query  string  false  "tatuape|mogi (default: loja do token)"
// @Param        busca  query  string  false  "filtro por nome ou código, sem distinção de acentos"
// @Success      200  {array}  dto.ProdutoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/produtos [get]
func (h *ProdutoHandler) List(c *fiber.Ctx) error {
	loja, err := h.lojaConsulta(c)
	if err != nil {
		return respondErro(c, err)
	}
	produtos, err := h.lojas.Get(loja).Produtos().ListAtivos(c.Context())
	if err != nil {
		return respondErro(c, err)
	}
	busca := c.Query("busca")
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		if busca != "" && !texto.Contem(p.Nome, busca) && !texto.Contem(p.Codigo, busca) {
			continue
		}
		out = append(out, dto.FromProduto(p))
	}
	return c.JSON(out)
}

// Grupos godoc
// @Summary      Listar produtos agrupados por nome (variações de cor/tamanho)
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        loja   query  string  false  "tatuape|mogi (default: loja do token)"
// @Success      200  {array}  dto.GrupoProdutoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/produtos/grupos [get]
func (h *ProdutoHandler) Grupos(c *fiber.Ctx) error {
	loja, err := h.lojaConsulta(c)
	if err != nil {
		return respondErro(c, err)
	}
	produtos, err := h.lojas.Get(loja).Produtos().ListAtivos(c.Context())
	if err != nil {
		return respondErro(c, err)
	}
	// ListAtivos vem ordenado por nome: grupos saem na ordem do catálogo.
	var grupos []dto.GrupoProdutoResponse
	indice := make(map[string]int)
	for _, p := range produtos {
		chave := texto.Normalizar(p.Nome)
		i, ok := indice[chave]
		if !ok {
			grupos = append(grupos, dto.GrupoProdutoResponse{Nome: p.Nome})
			i = len(grupos) - 1
			indice[chave] = i
		}
		grupos[i].Variacoes = append(grupos[i].Variacoes, dto.FromProduto(p))
	}
	return c.JSON(grupos)
}
