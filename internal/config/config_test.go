package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
listen: "127.0.0.1:8080"
session_key: "super-secret"
database:
  path: "/tmp/bookshelf-test.db"
google_books:
  api_key: "key-123"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "super-secret", cfg.SessionKey)
	assert.Equal(t, "/tmp/bookshelf-test.db", cfg.Database.Path)
	assert.Equal(t, "key-123", cfg.GoogleBooks.APIKey)

	// Defaults fill in whatever the file omits
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, "https://www.googleapis.com/books/v1", cfg.GoogleBooks.URL)
	assert.Equal(t, "subject:fiction", cfg.GoogleBooks.HomeSubject)
	assert.Equal(t, 10, cfg.GoogleBooks.HomeLimit)
	assert.Equal(t, 20, cfg.GoogleBooks.SearchLimit)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing session key",
			content: `listen: "127.0.0.1:8080"`,
			wantErr: "session key is required",
		},
		{
			name: "zero search limit",
			content: `
session_key: "x"
google_books:
  search_limit: 0
`,
			wantErr: "search limit must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSanitizesURLs(t *testing.T) {
	path := writeConfig(t, `
session_key: "x"
google_books:
  url: "https://books.example/v1/ "
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://books.example/v1", cfg.GoogleBooks.URL)
}
