package pdf

import (
	"bytes"
	"context"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
)

// TableExtractor implementa report.TableExtractor leyendo los glifos de cada
// página con ledongthuc/pdf (Page.Content sigue Tm, Td, TD y T*) y detectando
// una tabla por página.
type TableExtractor struct {
	cfg DetectorConfig
}

// NewTableExtractor construye el extractor con la configuración por defecto.
func NewTableExtractor() *TableExtractor {
	return &TableExtractor{cfg: DefaultDetectorConfig()}
}

// NewTableExtractorWithConfig permite ajustar tolerancias de detección.
func NewTableExtractorWithConfig(cfg DetectorConfig) *TableExtractor {
	return &TableExtractor{cfg: cfg}
}

// ExtractTables devuelve una tabla por página con tabla detectable, en orden de página.
// Un documento ilegible devuelve domain.ErrInvalidDocument.
func (e *TableExtractor) ExtractTables(ctx context.Context, data []byte) (tables []entity.Table, err error) {
	// ledongthuc/pdf entra en pánico con algunos archivos corruptos.
	defer func() {
		if r := recover(); r != nil {
			tables = nil
			err = fmt.Errorf("%w: pdf: %v", domain.ErrInvalidDocument, r)
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: abrir documento: %v", domain.ErrInvalidDocument, err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if t := detectTable(linesFromGlyphs(content.Text, e.cfg), e.cfg); t != nil {
			tables = append(tables, entity.Table{Page: i, Rows: t})
		}
	}
	return tables, nil
}
