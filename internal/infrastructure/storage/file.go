package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
)

var _ ports.StorageProvider = (*File)(nil)

// namespaceRe nombres de namespace válidos como nombre de archivo.
var namespaceRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// File guarda cada namespace en <dir>/<namespace>.json con permisos 0600.
// Es el almacenamiento por defecto del CLI.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile crea el directorio si no existe.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Scope devuelve el namespace ns.
func (f *File) Scope(ns string) ports.Storage { return &fileScope{f: f, ns: ns} }

// Close no hace nada.
func (f *File) Close() error { return nil }

type fileScope struct {
	f  *File
	ns string
}

func (s *fileScope) path() (string, error) {
	if !namespaceRe.MatchString(s.ns) {
		return "", fmt.Errorf("storage: namespace inválido %q", s.ns)
	}
	return filepath.Join(s.f.dir, s.ns+".json"), nil
}

func (s *fileScope) load() (map[string]string, error) {
	p, err := s.path()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", p, err)
	}
	data := map[string]string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("storage: %s corrupto: %w", p, err)
		}
	}
	return data, nil
}

// save escribe en un temporal y renombra para no dejar archivos a medias.
func (s *fileScope) save(data map[string]string) error {
	p, err := s.path()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage: eliminar %s: %w", p, err)
		}
		return nil
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: serializar: %w", err)
	}
	tmp, err := os.CreateTemp(s.f.dir, s.ns+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: permisos: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("storage: renombrar: %w", err)
	}
	return nil
}

func (s *fileScope) Get(_ context.Context, key string) (string, bool, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *fileScope) Set(_ context.Context, key, value string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

func (s *fileScope) Delete(_ context.Context, keys ...string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(data, k)
	}
	return s.save(data)
}

func (s *fileScope) Clear(_ context.Context) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return s.save(nil)
}
