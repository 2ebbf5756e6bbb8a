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
	appreport "github.com/jhoicas/daily-inventory/internal/application/report"
	reportcore "github.com/jhoicas/daily-inventory/internal/domain/report"
	infraexcel "github.com/jhoicas/daily-inventory/internal/infrastructure/excel"
	inframetrics "github.com/jhoicas/daily-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/daily-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/daily-inventory/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/daily-inventory/internal/interfaces/http"
	"github.com/jhoicas/daily-inventory/pkg/config"
	"github.com/jhoicas/daily-inventory/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upload_dir", cfg.Report.UploadDir).
		Msg("iniciando aplicación")

	store, err := storage.NewFileStore(cfg.Report.UploadDir, cfg.Report.OutputName)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de trabajo")
	}
	recorder := inframetrics.NewRecorder("daily_inventory")

	reportUC := appreport.NewGenerateReportUseCase(
		infrapdf.NewTableExtractor(),
		infraexcel.NewLedgerReader(),
		map[appreport.Format]appreport.Renderer{
			appreport.FormatXLSX: infraexcel.NewReportRenderer(),
			appreport.FormatPDF:  infrapdf.NewMarotoReportRenderer(),
		},
		store,
		recorder,
		log,
		appreport.Config{
			NamePolicy:    reportcore.ProductNamePolicy(cfg.Report.ProductNamePolicy),
			DefaultFormat: appreport.Format(cfg.Report.DefaultFormat),
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Daily Inventory API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:    reportUC,
		Metrics:     recorder.Handler(),
		ServiceName: cfg.App.Name,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	if cfg.App.OpenBrowser {
		if err := openBrowser(cfg.HTTP.URL()); err != nil {
			log.Warn().Err(err).Str("url", cfg.HTTP.URL()).Msg("no se pudo abrir el navegador")
		}
	}

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
