package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/daily-inventory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC    ReportService
	Metrics     nethttp.Handler // nil = sin /metrics
	ServiceName string
	Log         *logger.Logger // nil = sin log de peticiones
}

// Router registra las rutas del servicio.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	reportHandler := NewReportHandler(deps.ReportUC)
	app.Get("/", reportHandler.Index)
	app.Post("/upload", reportHandler.Upload)

	report := app.Group("/api/report")
	report.Post("/preview", reportHandler.Preview)
	report.Get("/latest", reportHandler.Latest)
}
