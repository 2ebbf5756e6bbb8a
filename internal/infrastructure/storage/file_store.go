// Package storage guarda en disco los archivos subidos y el último reporte generado
// en rutas fijas dentro de un directorio configurado. Cada petición reemplaza los
// archivos de la anterior.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jhoicas/daily-inventory/internal/domain"
)

// DefaultOutputExtensions extensiones de salida conocidas si no se indican otras.
var DefaultOutputExtensions = []string{".xlsx", ".pdf"}

// FileStore implementa report.Store sobre el sistema de archivos local.
type FileStore struct {
	dir        string
	outputName string
	outputExts []string
}

// NewFileStore crea el directorio si no existe. outputExts enumera las
// extensiones posibles de la salida (por defecto DefaultOutputExtensions).
func NewFileStore(dir, outputName string, outputExts ...string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	if len(outputExts) == 0 {
		outputExts = DefaultOutputExtensions
	}
	return &FileStore{dir: dir, outputName: outputName, outputExts: outputExts}, nil
}

// Dir devuelve el directorio raíz.
func (s *FileStore) Dir() string { return s.dir }

// SaveUpload guarda un archivo subido con un nombre fijo (p. ej. food_court_report.pdf).
func (s *FileStore) SaveUpload(_ context.Context, name string, data []byte) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: nombre de archivo %q", domain.ErrInvalidInput, name)
	}
	return s.writeAtomic(name, data)
}

// SaveOutput reemplaza el reporte generado. La escritura es atómica: se escribe
// un temporal en el mismo directorio y se renombra sobre la ruta final. Se
// eliminan las salidas previas con otra extensión para que LatestOutput sea unívoco.
func (s *FileStore) SaveOutput(_ context.Context, ext string, data []byte) (string, error) {
	if !slices.Contains(s.outputExts, ext) {
		return "", fmt.Errorf("%w: extensión de salida %q", domain.ErrInvalidInput, ext)
	}
	name := s.outputName + ext
	if err := s.writeAtomic(name, data); err != nil {
		return "", err
	}
	for _, other := range s.outputExts {
		if other != ext {
			_ = os.Remove(filepath.Join(s.dir, s.outputName+other))
		}
	}
	return filepath.Join(s.dir, name), nil
}

// LatestOutput devuelve el último reporte generado y su nombre de archivo. Si
// quedaran varias extensiones (p. ej. tras una caída), gana la más reciente.
// domain.ErrNoReport si todavía no hay ninguno.
func (s *FileStore) LatestOutput(_ context.Context) ([]byte, string, error) {
	var newest string
	var newestInfo fs.FileInfo
	for _, ext := range s.outputExts {
		path := filepath.Join(s.dir, s.outputName+ext)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("storage: buscar reporte: %w", err)
		}
		if newestInfo == nil || info.ModTime().After(newestInfo.ModTime()) {
			newest, newestInfo = path, info
		}
	}
	if newestInfo == nil {
		return nil, "", domain.ErrNoReport
	}
	data, err := os.ReadFile(newest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", domain.ErrNoReport
	}
	if err != nil {
		return nil, "", fmt.Errorf("storage: leer reporte: %w", err)
	}
	return data, filepath.Base(newest), nil
}

func (s *FileStore) writeAtomic(name string, data []byte) error {
	return WriteFileAtomic(filepath.Join(s.dir, name), data)
}

// WriteFileAtomic escribe data en un temporal del mismo directorio, lo
// sincroniza y lo renombra sobre path. Si algo falla, path queda intacto.
func WriteFileAtomic(path string, data []byte) error {
	name := filepath.Base(path)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op tras el rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sincronizar %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cerrar %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage: reemplazar %s: %w", name, err)
	}
	return nil
}
