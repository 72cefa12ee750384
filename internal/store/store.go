package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FileStore isola o acesso a disco para que parser, compilador e
// validador possam ser testados com fixtures em memória.
// Caminhos e padrões usam sempre "/" como separador.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Glob(pattern string) ([]string, error)
}

// Disk lê e escreve no sistema de arquivos real.
type Disk struct{}

func (Disk) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(path))
}

func (Disk) WriteFile(path string, data []byte) error {
	p := filepath.FromSlash(path)
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("criar diretório %s: %w", dir, err)
		}
	}
	return os.WriteFile(p, data, 0o644)
}

func (Disk) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.FromSlash(pattern))
	if err != nil {
		return nil, fmt.Errorf("padrão inválido %q: %w", pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.ToSlash(m))
	}
	sort.Strings(out)
	return out, nil
}

// Memory guarda arquivos em um map; usado nos testes.
type Memory struct {
	Files map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{Files: map[string][]byte{}}
}

func (m *Memory) ReadFile(path string) ([]byte, error) {
	data, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("arquivo não encontrado: %s", path)
	}
	return data, nil
}

func (m *Memory) WriteFile(path string, data []byte) error {
	m.Files[path] = data
	return nil
}

func (m *Memory) Glob(pattern string) ([]string, error) {
	var out []string
	for path := range m.Files {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return nil, fmt.Errorf("padrão inválido %q: %w", pattern, err)
		}
		if ok {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}
