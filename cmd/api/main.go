package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/application/ledger"
	"github.com/jhoicas/cafe-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-stock/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/cafe-stock/internal/interfaces/http"
	"github.com/jhoicas/cafe-stock/pkg/config"
	"github.com/jhoicas/cafe-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	if cfg.App.Env == "development" {
		// Fixture de desarrollo: usuarios y catálogo demo si las tablas están vacías
		if err := postgres.SeedDemo(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("seed demo")
		}
	}

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	var sessions auth.SessionStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesiones en Redis")
	} else {
		store := session.NewMemoryStore(time.Minute)
		defer store.Close()
		sessions = store
		log.Warn().Msg("sesiones en memoria (solo development)")
	}

	secret := cfg.Session.Secret
	if secret == "" {
		// config.Load ya exige secret fuera de development
		secret = "dev-only-secret"
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	postingUC := ledger.NewPostingUseCase(txRunner, productRepo, ledgerRepo)
	authUC := auth.NewAuthUseCase(userRepo, sessions, auth.SessionConfig{
		Secret: secret,
		TTL:    sessionTTL,
		Issuer: cfg.Session.Issuer,
	})

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		PostingUC:  postingUC,
		CookieName: cfg.Session.CookieName,
		SessionTTL: sessionTTL,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
