package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/carrinho"
	"github.com/jhoicas/pdv-multiloja/internal/application/clientes"
	"github.com/jhoicas/pdv-multiloja/internal/application/consolidado"
	"github.com/jhoicas/pdv-multiloja/internal/application/fulfillment"
	"github.com/jhoicas/pdv-multiloja/internal/application/standby"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
)

// Roles aceitas pelo middleware de autorização.
const (
	RoleVendedor  = "vendedor"
	RoleSeparador = "separador"
	RoleGerente   = "gerente"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	Lojas     repository.Lojas
	Sessoes   *carrinho.Sessoes
	Registro  *clientes.Registro
	Fila      *standby.Fila
	Engine    *fulfillment.Engine
	Motor     *consolidado.Motor
	JWTSecret string
}

// Router registra as rotas da API. Login é do subsistema externo: aqui
// toda rota de negócio exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	produtos := protected.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.Lojas)
	produtos.Get("/", produtoHandler.List)
	produtos.Get("/grupos", produtoHandler.Grupos)

	// Carrinho do vendedor (em memória)
	carrinhoGroup := protected.Group("/carrinho")
	carrinhoHandler := NewCarrinhoHandler(deps.Sessoes, deps.Lojas)
	carrinhoGroup.Get("/", carrinhoHandler.Get)
	carrinhoGroup.Delete("/", carrinhoHandler.Descartar)
	carrinhoGroup.Post("/itens", carrinhoHandler.AdicionarItem)
	carrinhoGroup.Put("/itens/:produtoId", carrinhoHandler.AlterarQuantidade)
	carrinhoGroup.Delete("/itens/:produtoId", carrinhoHandler.RemoverItem)

	// Clientes
	clientesGroup := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.Registro)
	clientesGroup.Get("/telefone/:telefone", clienteHandler.BuscarPorTelefone)
	clientesGroup.Get("/conflito", clienteHandler.VerificarConflito)

	// Fila de espera
	standbyGroup := protected.Group("/standby")
	standbyHandler := NewStandbyHandler(deps.Fila, deps.Sessoes, deps.Engine)
	standbyGroup.Post("/", standbyHandler.Enviar)
	standbyGroup.Get("/", standbyHandler.Listar)
	standbyGroup.Delete("/:loja/:id", standbyHandler.Cancelar)
	standbyGroup.Post("/:loja/:id/editar", standbyHandler.Reeditar)
	standbyGroup.Post("/:loja/:id/finalizar", standbyHandler.FinalizarDireto)

	// Separação de pedidos online
	separacaoGroup := protected.Group("/separacao", RequireRole(RoleSeparador, RoleGerente))
	separacaoHandler := NewSeparacaoHandler(deps.Fila, deps.Engine, deps.Lojas)
	separacaoGroup.Get("/", separacaoHandler.Listar)
	separacaoGroup.Get("/historico", separacaoHandler.Historico)
	separacaoGroup.Post("/:loja/:id/finalizar", separacaoHandler.Finalizar)

	// Ledger
	vendasGroup := protected.Group("/vendas")
	vendaHandler := NewVendaHandler(deps.Engine)
	vendasGroup.Post("/repetir", vendaHandler.Repetir)

	// Dashboard de gestão
	dashboardGroup := protected.Group("/dashboard", RequireRole(RoleGerente))
	dashboardHandler := NewDashboardHandler(deps.Motor)
	dashboardGroup.Get("/consolidado", dashboardHandler.Consolidado)
	dashboardGroup.Get("/vendedores/:nome/receita-mes", dashboardHandler.ReceitaVendedorMes)
}
