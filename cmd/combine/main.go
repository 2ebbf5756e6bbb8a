// combine genera el reporte combinado a partir de archivos en disco, sin servidor HTTP.
//
// Uso:
//
//	go run ./cmd/combine -food-court fc.pdf -restaurant rs.pdf -delivery dl.pdf [-stock stock.xlsx] [-format xlsx|pdf] [-out reporte.xlsx]
//
// Por defecto escribe final_combined_report_updated.<formato> en el directorio actual.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	appreport "github.com/jhoicas/daily-inventory/internal/application/report"
	"github.com/jhoicas/daily-inventory/internal/domain"
	"github.com/jhoicas/daily-inventory/internal/domain/entity"
	reportcore "github.com/jhoicas/daily-inventory/internal/domain/report"
	infraexcel "github.com/jhoicas/daily-inventory/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/daily-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/daily-inventory/internal/infrastructure/storage"
	"github.com/jhoicas/daily-inventory/pkg/config"
	"github.com/jhoicas/daily-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	foodCourt := flag.String("food-court", "", "reporte de ventas Food Court (PDF)")
	restaurant := flag.String("restaurant", "", "reporte de ventas Restaurant (PDF)")
	delivery := flag.String("delivery", "", "reporte de ventas Delivery (PDF)")
	stock := flag.String("stock", "", "hoja de stock (XLSX, opcional)")
	format := flag.String("format", cfg.Report.DefaultFormat, "formato de salida: xlsx o pdf")
	out := flag.String("out", "", "archivo de salida (por defecto <REPORT_OUTPUT_NAME>.<formato>)")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	renderers := map[appreport.Format]appreport.Renderer{
		appreport.FormatXLSX: infraexcel.NewReportRenderer(),
		appreport.FormatPDF:  infrapdf.NewMarotoReportRenderer(),
	}
	renderer, ok := renderers[appreport.Format(strings.ToLower(*format))]
	if !ok {
		fmt.Fprintf(os.Stderr, "Formato %q no soportado (xlsx, pdf)\n", *format)
		os.Exit(2)
	}

	in, err := readInput(map[entity.Channel]string{
		entity.ChannelFoodCourt:  *foodCourt,
		entity.ChannelRestaurant: *restaurant,
		entity.ChannelDelivery:   *delivery,
	}, *stock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	uc := appreport.NewGenerateReportUseCase(
		infrapdf.NewTableExtractor(),
		infraexcel.NewLedgerReader(),
		renderers,
		nil,
		nil,
		log,
		appreport.Config{NamePolicy: reportcore.ProductNamePolicy(cfg.Report.ProductNamePolicy)},
	)

	ctx := context.Background()
	rep, err := uc.Build(ctx, in)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintf(os.Stderr, "Hoja de stock sin columnas: %s\n", strings.Join(schemaErr.Missing, ", "))
		} else {
			fmt.Fprintf(os.Stderr, "Generar reporte: %v\n", err)
		}
		os.Exit(1)
	}
	data, err := renderer.Render(ctx, rep, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Serializar reporte: %v\n", err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = cfg.Report.OutputName + renderer.Extension()
	}
	if err := storage.WriteFileAtomic(outPath, data); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d productos)\n", outPath, len(rep.Rows))
}

func readInput(paths map[entity.Channel]string, stockPath string) (appreport.Input, error) {
	in := appreport.Input{Documents: make(map[entity.Channel][]byte, len(paths))}
	for _, ch := range entity.Channels() {
		p := paths[ch]
		if p == "" {
			return in, fmt.Errorf("falta el reporte de %s", ch)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return in, fmt.Errorf("leer %s: %w", p, err)
		}
		in.Documents[ch] = data
	}
	if stockPath != "" {
		data, err := os.ReadFile(stockPath)
		if err != nil {
			return in, fmt.Errorf("leer %s: %w", stockPath, err)
		}
		in.Ledger = data
	}
	return in, nil
}
