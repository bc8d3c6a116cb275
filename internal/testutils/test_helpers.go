// Package testutils provides test doubles and fixtures shared across liveconsole packages.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FileHelpers provides utilities for working with test files
type FileHelpers struct{}

// NewFileHelpers creates a new file helpers instance
func NewFileHelpers() *FileHelpers {
	return &FileHelpers{}
}

// CreateTempFile creates a temporary file with given content
func (f *FileHelpers) CreateTempFile(t *testing.T, filename, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	err := os.WriteFile(filePath, []byte(content), 0o600)
	require.NoError(t, err, "Should create temp file successfully")

	return filePath
}

// ConfigFixtures returns the same console settings written in each supported
// config file format, keyed by file name.
func ConfigFixtures() map[string]string {
	return map[string]string{
		"liveconsole.yaml": "hostname: studio.local\nport: 9000\nlisten-port: 9001\ntimeout: 500ms\n",
		"liveconsole.toml": "hostname = \"studio.local\"\nport = 9000\nlisten-port = 9001\ntimeout = \"500ms\"\n",
		"liveconsole.json": `{"hostname": "studio.local", "port": 9000, "listen-port": 9001, "timeout": "500ms"}`,
	}
}
