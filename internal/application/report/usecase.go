package report

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
	reportcore "github.com/jhoicas/daily-inventory/internal/domain/report"
	"github.com/jhoicas/daily-inventory/pkg/logger"
)

// Format formato de salida del reporte combinado.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Nombres fijos de los archivos subidos dentro del directorio de trabajo.
var uploadNames = map[entity.Channel]string{
	entity.ChannelFoodCourt:  "food_court_report.pdf",
	entity.ChannelRestaurant: "restaurant_report.pdf",
	entity.ChannelDelivery:   "delivery_report.pdf",
}

const ledgerUploadName = "stock_report.xlsx"

// Config opciones del caso de uso.
type Config struct {
	NamePolicy    reportcore.ProductNamePolicy
	DefaultFormat Format
}

// Input documentos de una petición: los tres PDF de venta y la hoja de stock opcional.
type Input struct {
	Documents map[entity.Channel][]byte
	Ledger    []byte // nil o vacío = sin hoja de stock
	Format    Format // vacío = formato por defecto
}

// Output reporte generado listo para descargar.
type Output struct {
	RequestID   string
	Data        []byte
	Filename    string
	ContentType string
	Report      *entity.Report
}

// GenerateReportUseCase ejecuta extracción → agregación → serialización.
// Las peticiones se serializan: los archivos de trabajo y la salida ocupan rutas fijas.
type GenerateReportUseCase struct {
	mu        sync.Mutex
	extractor TableExtractor
	ledger    LedgerReader
	renderers map[Format]Renderer
	store     Store
	metrics   Metrics
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

// NewGenerateReportUseCase construye el caso de uso inyectando sus dependencias.
func NewGenerateReportUseCase(
	extractor TableExtractor,
	ledger LedgerReader,
	renderers map[Format]Renderer,
	store Store,
	metrics Metrics,
	log *logger.Logger,
	cfg Config,
) *GenerateReportUseCase {
	if cfg.NamePolicy == "" {
		cfg.NamePolicy = reportcore.ProductNamePlaceholder
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = FormatXLSX
	}
	return &GenerateReportUseCase{
		extractor: extractor,
		ledger:    ledger,
		renderers: renderers,
		store:     store,
		metrics:   metrics,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Build extrae y agrega sin tocar el almacenamiento (vista previa).
func (uc *GenerateReportUseCase) Build(ctx context.Context, in Input) (*entity.Report, error) {
	var records []entity.SalesRecord
	for _, ch := range entity.Channels() {
		data := in.Documents[ch]
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: falta el reporte de %s", domain.ErrInvalidInput, ch)
		}
		tables, err := uc.extractor.ExtractTables(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("reporte %s: %w", ch, err)
		}
		recs, err := reportcore.ExtractSales(tables, ch, uc.cfg.NamePolicy)
		if err != nil {
			return nil, err
		}
		if uc.metrics != nil {
			uc.metrics.ObserveRecords(ch.String(), len(recs))
		}
		uc.log.Debug().Str("channel", ch.String()).Int("tables", len(tables)).Int("records", len(recs)).Msg("ventas extraídas")
		records = append(records, recs...)
	}

	var ledger *entity.Ledger
	if len(in.Ledger) > 0 {
		l, err := uc.ledger.ReadLedger(ctx, in.Ledger)
		if err != nil {
			return nil, fmt.Errorf("hoja de stock: %w", err)
		}
		uc.log.Debug().Int("ledger_rows", len(l.Records)).Msg("hoja de stock leída")
		ledger = l
	}
	return reportcore.Aggregate(records, ledger)
}

// Generate guarda los archivos subidos, construye el reporte, lo serializa y
// reemplaza la salida anterior. Si algo falla antes de serializar por completo,
// la salida anterior queda intacta.
func (uc *GenerateReportUseCase) Generate(ctx context.Context, in Input) (*Output, error) {
	format := in.Format
	if format == "" {
		format = uc.cfg.DefaultFormat
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	requestID := uuid.New().String()
	start := uc.now()

	out, err := uc.generate(ctx, in, renderer)
	elapsed := uc.now().Sub(start)
	if err != nil {
		uc.observe(outcomeOf(err), 0, elapsed)
		uc.log.Error().Err(err).Str("request_id", requestID).Msg("generación de reporte fallida")
		return nil, err
	}
	out.RequestID = requestID
	uc.observe("ok", len(out.Report.Rows), elapsed)
	uc.log.Info().
		Str("request_id", requestID).
		Str("format", string(format)).
		Bool("with_ledger", out.Report.WithLedger).
		Int("rows", len(out.Report.Rows)).
		Dur("elapsed", elapsed).
		Msg("reporte generado")
	return out, nil
}

func (uc *GenerateReportUseCase) generate(ctx context.Context, in Input, renderer Renderer) (*Output, error) {
	for _, ch := range entity.Channels() {
		if data := in.Documents[ch]; len(data) > 0 {
			if err := uc.store.SaveUpload(ctx, uploadNames[ch], data); err != nil {
				return nil, err
			}
		}
	}
	if len(in.Ledger) > 0 {
		if err := uc.store.SaveUpload(ctx, ledgerUploadName, in.Ledger); err != nil {
			return nil, err
		}
	}

	rep, err := uc.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(ctx, rep, uc.now())
	if err != nil {
		return nil, fmt.Errorf("serializar reporte: %w", err)
	}
	path, err := uc.store.SaveOutput(ctx, renderer.Extension(), data)
	if err != nil {
		return nil, err
	}
	return &Output{
		Data:        data,
		Filename:    filepath.Base(path),
		ContentType: renderer.ContentType(),
		Report:      rep,
	}, nil
}

// Latest devuelve el último reporte generado. domain.ErrNoReport si no hay.
func (uc *GenerateReportUseCase) Latest(ctx context.Context) (*Output, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	data, name, err := uc.store.LatestOutput(ctx)
	if err != nil {
		return nil, err
	}
	contentType := "application/octet-stream"
	for _, r := range uc.renderers {
		if r.Extension() == filepath.Ext(name) {
			contentType = r.ContentType()
		}
	}
	return &Output{Data: data, Filename: name, ContentType: contentType}, nil
}

func (uc *GenerateReportUseCase) observe(outcome string, rows int, elapsed time.Duration) {
	if uc.metrics != nil {
		uc.metrics.ObserveReport(outcome, rows, elapsed)
	}
}

func outcomeOf(err error) string {
	var schemaErr *domain.SchemaError
	var rowErr *domain.RowError
	switch {
	case errors.As(err, &schemaErr):
		return "schema_error"
	case errors.As(err, &rowErr):
		return "malformed_row"
	case errors.Is(err, domain.ErrInvalidDocument):
		return "invalid_document"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
