package report

import (
	"context"
	"time"

	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

// TableExtractor detecta una tabla por página en un documento PDF.
// Las páginas sin tabla no aparecen en el resultado.
type TableExtractor interface {
	ExtractTables(ctx context.Context, data []byte) ([]entity.Table, error)
}

// LedgerReader lee la hoja de stock. Devuelve *domain.SchemaError si faltan columnas.
type LedgerReader interface {
	ReadLedger(ctx context.Context, data []byte) (*entity.Ledger, error)
}

// Renderer serializa el reporte combinado en un formato descargable.
type Renderer interface {
	Render(ctx context.Context, rep *entity.Report, generatedAt time.Time) ([]byte, error)
	ContentType() string
	Extension() string
}

// Store guarda los archivos de la última petición en rutas fijas.
type Store interface {
	SaveUpload(ctx context.Context, name string, data []byte) error
	SaveOutput(ctx context.Context, ext string, data []byte) (string, error)
	LatestOutput(ctx context.Context) ([]byte, string, error)
}

// Metrics recibe los resultados del pipeline.
type Metrics interface {
	ObserveRecords(channel string, n int)
	ObserveReport(outcome string, rows int, elapsed time.Duration)
}
