package persistence

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Manager handles save/load of documents under one directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a document name
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".json")
}

// Exists checks if a document exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// SaveRun writes a run record
func (m *Manager) SaveRun(name string, dto RunDTO) error {
	return m.save(name, dto)
}

// SaveReport writes a benchmark report
func (m *Manager) SaveReport(name string, dto ReportDTO) error {
	return m.save(name, dto)
}

// LoadRun reads a run record
func (m *Manager) LoadRun(name string) (RunDTO, error) {
	var dto RunDTO
	err := m.load(name, &dto)
	return dto, err
}

// LoadReport reads a benchmark report
func (m *Manager) LoadReport(name string) (ReportDTO, error) {
	var dto ReportDTO
	err := m.load(name, &dto)
	return dto, err
}

func (m *Manager) save(name string, v any) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.FilePath(name), data, 0644)
}

func (m *Manager) load(name string, v any) error {
	data, err := os.ReadFile(m.FilePath(name))
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}
