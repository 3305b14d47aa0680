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
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/jhoicas/accounts-api/internal/application/usecase"
	"github.com/jhoicas/accounts-api/internal/infrastructure/geoip"
	inframail "github.com/jhoicas/accounts-api/internal/infrastructure/mail"
	"github.com/jhoicas/accounts-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/accounts-api/internal/interfaces/http"
	"github.com/jhoicas/accounts-api/pkg/config"
	"github.com/jhoicas/accounts-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewSessionTokenRepository(pool)

	ledger := auth.NewTokenLedger(tokenRepo, auth.LedgerConfig{
		TokenLength: cfg.Auth.TokenLength,
		MaxAge:      time.Duration(cfg.Auth.TokenMaxAgeHrs) * time.Hour,
		MaxRetries:  cfg.Auth.IssueMaxRetries,
	})
	passwords := auth.NewPasswordVerifier(cfg.Auth.BcryptCost)
	authorizer := auth.NewAuthorizer()
	authUC := auth.NewAuthUseCase(userRepo, ledger, passwords)

	// Colaboradores best-effort: mail y geo-IP pueden faltar sin afectar el núcleo.
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = inframail.NewMailer(cfg.SMTP, cfg.App.BaseURL)
	} else {
		log.Warn().Msg("SMTP no configurado: notificaciones por mail deshabilitadas")
	}
	var geoResolver ports.GeoResolver
	if cfg.GeoIP.DBPath != "" {
		resolver, err := geoip.Open(cfg.GeoIP.DBPath)
		if err != nil {
			log.Warn().Err(err).Msg("base geoip no disponible: lookup geográfico deshabilitado")
		} else {
			defer resolver.Close()
			geoResolver = resolver
		}
	}

	userUC := usecase.NewUserUseCase(userRepo, ledger, authorizer, passwords, mailer, geoResolver, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Accounts API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: authUC,
		UserUC: userUC,
		JWT:    cfg.JWT,
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
