package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-inventory/internal/application/dto"
	appreport "github.com/jhoicas/daily-inventory/internal/application/report"
	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

//go:embed templates/index.html
var templates embed.FS

// Campos del formulario multipart.
const (
	FieldFoodCourt  = "food_court_file"
	FieldRestaurant = "restaurant_file"
	FieldDelivery   = "delivery_file"
	FieldStock      = "stock_file"
)

var channelFields = map[entity.Channel]string{
	entity.ChannelFoodCourt:  FieldFoodCourt,
	entity.ChannelRestaurant: FieldRestaurant,
	entity.ChannelDelivery:   FieldDelivery,
}

// ReportService lo que el handler necesita del caso de uso de reportes.
type ReportService interface {
	Generate(ctx context.Context, in appreport.Input) (*appreport.Output, error)
	Build(ctx context.Context, in appreport.Input) (*entity.Report, error)
	Latest(ctx context.Context) (*appreport.Output, error)
}

// ReportHandler maneja el formulario de carga y la descarga del reporte combinado.
type ReportHandler struct {
	uc ReportService
}

// NewReportHandler construye el handler.
func NewReportHandler(uc ReportService) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Index godoc
// @Summary      Formulario de carga
// @Tags         report
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *ReportHandler) Index(c *fiber.Ctx) error {
	page, err := templates.ReadFile("templates/index.html")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// Upload godoc
// @Summary      Generar reporte combinado
// @Description  Recibe los tres PDF de venta y la hoja de stock opcional; responde con el archivo combinado.
// @Tags         report
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        food_court_file  formData  file    true   "Reporte Food Court (PDF)"
// @Param        restaurant_file  formData  file    true   "Reporte Restaurant (PDF)"
// @Param        delivery_file    formData  file    true   "Reporte Delivery (PDF)"
// @Param        stock_file       formData  file    false  "Hoja de stock (XLSX)"
// @Param        format           query     string  false  "xlsx o pdf"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.SchemaErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /upload [post]
func (h *ReportHandler) Upload(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out)
}

// Preview godoc
// @Summary      Vista previa del reporte combinado
// @Description  Mismo pipeline que /upload pero responde JSON y no reemplaza la salida guardada.
// @Tags         report
// @Accept       multipart/form-data
// @Produce      json
// @Param        food_court_file  formData  file  true   "Reporte Food Court (PDF)"
// @Param        restaurant_file  formData  file  true   "Reporte Restaurant (PDF)"
// @Param        delivery_file    formData  file  true   "Reporte Delivery (PDF)"
// @Param        stock_file       formData  file  false  "Hoja de stock (XLSX)"
// @Success      200  {object}  dto.ReportPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.SchemaErrorResponse
// @Router       /api/report/preview [post]
func (h *ReportHandler) Preview(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return writeError(c, err)
	}
	rep, err := h.uc.Build(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewReportPreviewResponse(rep))
}

// Latest godoc
// @Summary      Descargar el último reporte generado
// @Tags         report
// @Produce      application/octet-stream
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/report/latest [get]
func (h *ReportHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.Latest(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out)
}

func sendFile(c *fiber.Ctx, out *appreport.Output) error {
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, out.ContentType)
	if out.RequestID != "" {
		c.Set(fiber.HeaderXRequestID, out.RequestID)
	}
	return c.Send(out.Data)
}

// readInput lee los archivos del formulario. Un campo de stock vacío equivale a no enviarlo.
func readInput(c *fiber.Ctx) (appreport.Input, error) {
	in := appreport.Input{
		Documents: make(map[entity.Channel][]byte, len(channelFields)),
		Format:    appreport.Format(strings.ToLower(c.Query("format"))),
	}
	for _, ch := range entity.Channels() {
		field := channelFields[ch]
		fh, err := c.FormFile(field)
		if err != nil {
			return in, fmt.Errorf("%w: falta el archivo %s", domain.ErrInvalidInput, field)
		}
		data, err := readPart(fh)
		if err != nil {
			return in, err
		}
		if len(data) == 0 {
			return in, fmt.Errorf("%w: el archivo %s está vacío", domain.ErrInvalidInput, field)
		}
		in.Documents[ch] = data
	}

	fh, err := c.FormFile(FieldStock)
	if err == nil && fh.Size > 0 {
		data, err := readPart(fh)
		if err != nil {
			return in, err
		}
		in.Ledger = data
	}
	return in, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// writeError traduce los errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var schemaErr *domain.SchemaError
	var rowErr *domain.RowError
	switch {
	case errors.As(err, &schemaErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.SchemaErrorResponse{
			Code:           "SCHEMA_ERROR",
			Message:        err.Error(),
			MissingColumns: schemaErr.Missing,
		})
	case errors.As(err, &rowErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_ROW", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidDocument):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_DOCUMENT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoReport):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "todavía no se ha generado ningún reporte"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
