package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/daily-inventory/internal/domain"
)

func TestFileStore_SinReporte(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"), "final_report")
	require.NoError(t, err)

	_, _, err = s.LatestOutput(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNoReport))
}

func TestFileStore_SaveOutputReemplaza(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), "final_report")
	require.NoError(t, err)

	_, err = s.SaveOutput(ctx, ".xlsx", []byte("primero"))
	require.NoError(t, err)
	path, err := s.SaveOutput(ctx, ".pdf", []byte("segundo"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "final_report.pdf"), path)

	data, name, err := s.LatestOutput(ctx)
	require.NoError(t, err)
	assert.Equal(t, "segundo", string(data))
	assert.Equal(t, "final_report.pdf", name)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "final_report.xlsx"))
	assert.True(t, os.IsNotExist(statErr), "la salida anterior con otra extensión se elimina")

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestFileStore_SaveUpload(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), "final_report")
	require.NoError(t, err)

	require.NoError(t, s.SaveUpload(ctx, "food_court_report.pdf", []byte("a")))
	require.NoError(t, s.SaveUpload(ctx, "food_court_report.pdf", []byte("b")))
	got, err := os.ReadFile(filepath.Join(s.Dir(), "food_court_report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))

	err = s.SaveUpload(ctx, "../escape.pdf", []byte("x"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFileStore_NombreConComodines(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir, "reporte[1]*")
	require.NoError(t, err)
	// un archivo que casaría con el patrón si el nombre se tratara como glob
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reporte1x.pdf"), []byte("ajeno"), 0o644))

	_, _, err = s.LatestOutput(ctx)
	assert.True(t, errors.Is(err, domain.ErrNoReport))

	_, err = s.SaveOutput(ctx, ".xlsx", []byte("propio"))
	require.NoError(t, err)
	data, name, err := s.LatestOutput(ctx)
	require.NoError(t, err)
	assert.Equal(t, "propio", string(data))
	assert.Equal(t, "reporte[1]*.xlsx", name)

	_, err = os.Stat(filepath.Join(dir, "reporte1x.pdf"))
	assert.NoError(t, err, "archivos ajenos no se tocan")
}

func TestFileStore_LatestOutputGanaElMasReciente(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir, "final_report")
	require.NoError(t, err)

	// restos de una caída: quedan ambas extensiones
	xlsx := filepath.Join(dir, "final_report.xlsx")
	pdf := filepath.Join(dir, "final_report.pdf")
	require.NoError(t, os.WriteFile(xlsx, []byte("nuevo"), 0o644))
	require.NoError(t, os.WriteFile(pdf, []byte("viejo"), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(pdf, old, old))

	data, name, err := s.LatestOutput(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", string(data))
	assert.Equal(t, "final_report.xlsx", name)
}

func TestFileStore_ExtensionDesconocida(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "final_report")
	require.NoError(t, err)
	_, err = s.SaveOutput(context.Background(), ".csv", []byte("x"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salida.xlsx")
	require.NoError(t, WriteFileAtomic(path, []byte("uno")))
	require.NoError(t, WriteFileAtomic(path, []byte("dos")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dos", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")

	err = WriteFileAtomic(filepath.Join(dir, "no-existe", "x.pdf"), []byte("x"))
	assert.Error(t, err)
}
