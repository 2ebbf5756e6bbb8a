package pdf

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	lpdf "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// DetectorConfig ajusta la detección de tablas a partir de posiciones de texto.
// Las distancias están en puntos PDF.
type DetectorConfig struct {
	MinColumns      int     // celdas mínimas de la fila de cabecera
	MinRowCells     int     // celdas mínimas de una fila de datos para seguir en la tabla
	CharWidth       float64 // ancho por carácter cuando la fuente no declara anchos (fracción del tamaño de fuente)
	LineTolerance   float64 // diferencia de Y entre glifos de una misma línea
	WordGap         float64 // holgura entre glifos consecutivos de un mismo fragmento
	CellGap         float64 // separación mínima entre dos celdas
	AnchorTolerance float64 // holgura al alinear un fragmento con una columna de cabecera
	MaxLineGap      float64 // separación vertical que corta la tabla
	MaxPitchFactor  float64 // corta la tabla si el salto supera este múltiplo del interlineado de la tabla
}

// DefaultDetectorConfig valores para reportes de venta con fuente de 8 a 11 pt.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinColumns:      3,
		MinRowCells:     2,
		CharWidth:       0.5,
		LineTolerance:   2,
		WordGap:         1.5,
		CellGap:         6,
		AnchorTolerance: 4,
		MaxLineGap:      40,
		MaxPitchFactor:  2.5,
	}
}

// textChunk es un fragmento de texto contiguo en una línea.
// W = 0 cuando no se conoce el ancho; se estima con CharWidth.
type textChunk struct {
	X        float64
	W        float64
	FontSize float64
	S        string
}

// textLine agrupa los fragmentos que comparten línea base.
type textLine struct {
	Y      float64
	Chunks []textChunk
}

// cell es un grupo de fragmentos contiguos de una línea.
type cell struct {
	X    float64
	End  float64
	Text string
}

// linesFromGlyphs reconstruye fragmentos y líneas a partir de los glifos de
// Page.Content, en orden de dibujo. Un glifo continúa el fragmento anterior si
// está en la misma línea y arranca donde terminó el anterior; con fuentes sin
// anchos declarados todos los glifos de un mismo texto comparten X.
func linesFromGlyphs(glyphs []lpdf.Text, cfg DetectorConfig) []textLine {
	type positioned struct {
		y     float64
		chunk textChunk
	}
	var chunks []positioned
	var cur *positioned
	next := 0.0
	for _, g := range glyphs {
		continues := cur != nil &&
			math.Abs(g.Y-cur.y) <= cfg.LineTolerance &&
			(math.Abs(g.X-next) <= cfg.WordGap || (g.W == 0 && g.X == cur.chunk.X))
		if !continues {
			chunks = append(chunks, positioned{y: g.Y, chunk: textChunk{X: g.X, FontSize: g.FontSize}})
			cur = &chunks[len(chunks)-1]
		}
		cur.chunk.S += g.S
		cur.chunk.W += g.W
		next = g.X + g.W
	}

	sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].y > chunks[j].y })
	var lines []textLine
	for _, c := range chunks {
		if strings.TrimSpace(c.chunk.S) == "" {
			continue
		}
		if n := len(lines); n > 0 && lines[n-1].Y-c.y <= cfg.LineTolerance {
			lines[n-1].Chunks = append(lines[n-1].Chunks, c.chunk)
			continue
		}
		lines = append(lines, textLine{Y: c.y, Chunks: []textChunk{c.chunk}})
	}
	for i := range lines {
		lines[i].Chunks = sortedChunks(lines[i].Chunks)
	}
	return lines
}

// detectTable devuelve la tabla de la página (fila 0 = cabecera) o nil si no hay.
// La tabla es la racha más larga de líneas consecutivas que arranca en una línea
// con al menos MinColumns celdas. Una línea continúa la tabla si tiene
// MinRowCells celdas, todas alineadas con columnas de la cabecera, y ocupa la
// primera y la última columna.
func detectTable(lines []textLine, cfg DetectorConfig) [][]string {
	lines = append([]textLine(nil), lines...)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y > lines[j].Y })

	cellsByLine := make([][]cell, len(lines))
	for i, l := range lines {
		cellsByLine[i] = splitCells(l.Chunks, cfg)
	}

	bestStart, bestLen := -1, 0
	for start := 0; start < len(lines); start++ {
		header := cellsByLine[start]
		if len(header) < cfg.MinColumns {
			continue
		}
		n, pitch := 1, 0.0
		for next := start + 1; next < len(lines); next++ {
			gap := lines[next-1].Y - lines[next].Y
			if gap > cfg.MaxLineGap || (pitch > 0 && gap > pitch*cfg.MaxPitchFactor) {
				break
			}
			if !continuesTable(cellsByLine[next], header, cfg) {
				break
			}
			if pitch == 0 {
				pitch = gap
			}
			n++
		}
		if n > bestLen {
			bestStart, bestLen = start, n
		}
	}
	if bestStart < 0 {
		return nil
	}

	headerCells := cellsByLine[bestStart]
	anchors := make([]float64, len(headerCells))
	header := make([]string, len(headerCells))
	for i, c := range headerCells {
		anchors[i] = c.X
		header[i] = c.Text
	}

	rows := [][]string{header}
	for i := bestStart + 1; i < bestStart+bestLen; i++ {
		rows = append(rows, assignColumns(lines[i].Chunks, anchors, cfg))
	}
	return rows
}

// continuesTable exige que cada celda solape alguna columna de la cabecera y
// que la línea tenga valor en la primera y en la última columna.
func continuesTable(cells, header []cell, cfg DetectorConfig) bool {
	if len(cells) < cfg.MinRowCells {
		return false
	}
	first, last := false, false
	for _, c := range cells {
		col := overlappingColumn(c, header, cfg)
		if col < 0 {
			return false
		}
		first = first || col == 0
		last = last || col == len(header)-1
	}
	return first && last
}

// overlappingColumn devuelve la columna de cabecera que solapa la celda, o -1.
// La columna i se extiende hasta el inicio de la columna siguiente, así los
// valores alineados a la derecha o centrados siguen cayendo en su columna.
func overlappingColumn(c cell, header []cell, cfg DetectorConfig) int {
	for i := len(header) - 1; i >= 0; i-- {
		start := header[i].X - cfg.AnchorTolerance
		end := header[i].End + cfg.AnchorTolerance
		if i+1 < len(header) && header[i+1].X > end {
			end = header[i+1].X - cfg.AnchorTolerance
		}
		if c.X <= end && c.End >= start {
			return i
		}
	}
	return -1
}

// splitCells ordena los fragmentos por X y une los que están a menos de CellGap.
func splitCells(chunks []textChunk, cfg DetectorConfig) []cell {
	var cells []cell
	for _, ch := range sortedChunks(chunks) {
		text := cleanText(ch.S)
		if text == "" {
			continue
		}
		end := ch.X + chunkWidth(ch, cfg)
		if n := len(cells); n > 0 && ch.X-cells[n-1].End < cfg.CellGap {
			last := &cells[n-1]
			last.Text = joinText(last.Text, text)
			last.End = math.Max(last.End, end)
			continue
		}
		cells = append(cells, cell{X: ch.X, End: end, Text: text})
	}
	return cells
}

// chunkWidth usa el ancho real si la fuente lo declara; si no, lo estima.
func chunkWidth(ch textChunk, cfg DetectorConfig) float64 {
	if ch.W > 0 {
		return ch.W
	}
	size := ch.FontSize
	if size <= 0 {
		size = 9
	}
	return float64(utf8.RuneCountInString(strings.TrimRightFunc(ch.S, unicode.IsSpace))) * size * cfg.CharWidth
}

// assignColumns reparte los fragmentos en las columnas de la cabecera: cada
// fragmento va a la última columna cuyo inicio queda a su izquierda.
func assignColumns(chunks []textChunk, anchors []float64, cfg DetectorConfig) []string {
	out := make([]string, len(anchors))
	for _, ch := range sortedChunks(chunks) {
		text := cleanText(ch.S)
		if text == "" {
			continue
		}
		idx := 0
		for i, a := range anchors {
			if a <= ch.X+cfg.AnchorTolerance {
				idx = i
			}
		}
		out[idx] = joinText(out[idx], text)
	}
	return out
}

func sortedChunks(chunks []textChunk) []textChunk {
	sorted := append([]textChunk(nil), chunks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	return sorted
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
