package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pdv-multiloja/internal/application/carrinho"
	"github.com/jhoicas/pdv-multiloja/internal/application/clientes"
	"github.com/jhoicas/pdv-multiloja/internal/application/consolidado"
	"github.com/jhoicas/pdv-multiloja/internal/application/fulfillment"
	"github.com/jhoicas/pdv-multiloja/internal/application/roteamento"
	"github.com/jhoicas/pdv-multiloja/internal/application/standby"
	"github.com/jhoicas/pdv-multiloja/internal/domain/entity"
	"github.com/jhoicas/pdv-multiloja/internal/domain/repository"
	"github.com/jhoicas/pdv-multiloja/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pdv-multiloja/internal/interfaces/http"
	"github.com/jhoicas/pdv-multiloja/pkg/config"
	"github.com/jhoicas/pdv-multiloja/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()

	// Um pool por loja física: bancos independentes, sem chaves compartilhadas.
	poolTatuape, err := postgres.NewPool(ctx, cfg.Tatuape)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL de tatuape")
	}
	defer poolTatuape.Close()

	poolMogi, err := postgres.NewPool(ctx, cfg.Mogi)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL de mogi")
	}
	defer poolMogi.Close()

	lojas := repository.Lojas{
		entity.LojaTatuape: postgres.NewLojaAdapter(entity.LojaTatuape, poolTatuape),
		entity.LojaMogi:    postgres.NewLojaAdapter(entity.LojaMogi, poolMogi),
	}

	rotas := roteamento.MaioriaPorLinhas{}
	sessoes := carrinho.NewSessoes()
	registro := clientes.NewRegistro(lojas)
	fila := standby.NewFila(lojas, registro, rotas, log)
	engine := fulfillment.NewEngine(lojas, rotas, fulfillment.NewNumerador(), log)
	motor := consolidado.NewMotor(lojas)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV Multiloja API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Lojas:     lojas,
		Sessoes:   sessoes,
		Registro:  registro,
		Fila:      fila,
		Engine:    engine,
		Motor:     motor,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
