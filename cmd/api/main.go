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
	"github.com/tallerpro/taller-inventario/internal/application/inventario"
	"github.com/tallerpro/taller-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/tallerpro/taller-inventario/internal/interfaces/http"
	"github.com/tallerpro/taller-inventario/pkg/config"
	"github.com/tallerpro/taller-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando servicio de inventario")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	reservaRepo := postgres.NewReservaRepository(pool)

	movimientosUC := inventario.NewMovimientosUseCase(txRunner)
	transferenciasUC := inventario.NewTransferenciasUseCase(txRunner)
	reservasUC := inventario.NewReservasUseCase(txRunner, reservaRepo, inventario.ReservasConfig{
		TTLHoras:      cfg.Inventario.ReservaTTLHoras,
		LimiteBarrido: cfg.Inventario.ReservaReleaseLimit,
	}, log)
	consultasUC := inventario.NewConsultasUseCase(movimientoRepo, inventarioRepo)

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
		Title:    "Taller Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movimientos:    movimientosUC,
		Transferencias: transferenciasUC,
		Reservas:       reservasUC,
		Consultas:      consultasUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	// Barrido periódico de reservas caducadas en proceso. Con un scheduler
	// externo (cron contra /reservas/liberar-caducadas) se deja en 0.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if cfg.Inventario.ReservaSweepMinutes > 0 {
		go runSweep(sweepCtx, reservasUC, time.Duration(cfg.Inventario.ReservaSweepMinutes)*time.Minute, log)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servicio detenido")
}

// runSweep invoca el barrido de reservas caducadas cada intervalo hasta que
// el contexto se cancele.
func runSweep(ctx context.Context, reservas *inventario.ReservasUseCase, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := reservas.LiberarReservasCaducadas(ctx, inventario.LiberarCaducadasInput{
				TriggeredBy: "sweeper",
			}); err != nil {
				log.Error().Err(err).Msg("barrido de reservas caducadas")
			}
		}
	}
}
