package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/config"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
)

func TestResolveConfig_FlagsWinOverFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROXY_URL", "")
	t.Setenv("DATABASE_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"api_key": "file-key", "port": 9000, "max_concurrent": 4}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := resolveConfig(path, config.Config{Port: 9999})
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 4, cfg.MaxConcurrent)
}

func TestResolveConfig_EnvFillsGaps(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LLM_PROXY_URL", "")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := resolveConfig("", config.Config{})
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 1, cfg.MaxConcurrent, "documents parse sequentially unless configured")
}

func TestResolveConfig_RequiresLLMAccess(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROXY_URL", "")
	t.Setenv("DATABASE_URL", "")

	_, err := resolveConfig("", config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM access is required")
}

func TestResolveConfig_ProxyAloneSuffices(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROXY_URL", "http://localhost:3001/api/generate")
	t.Setenv("DATABASE_URL", "")

	cfg, err := resolveConfig("", config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/api/generate", cfg.ProxyURL)
}

func TestBatchPolicyFromConfig(t *testing.T) {
	assert.Equal(t, extraction.SkipFailed, batchPolicyFromConfig(config.BatchSkip))
	assert.Equal(t, extraction.AbortOnError, batchPolicyFromConfig(config.BatchAbort))
	assert.Equal(t, extraction.AbortOnError, batchPolicyFromConfig(""))
}

func TestMimeForPath(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "PDF extension", file: "resume.pdf", want: extraction.MimePDF},
		{name: "DOCX extension", file: "resume.docx", want: extraction.MimeDocx},
		{name: "Text extension", file: "resume.txt", want: extraction.MimePlainText},
		{name: "Uppercase extension", file: "RESUME.PDF", want: extraction.MimePDF},
		{name: "Unknown extension falls back to text", file: "resume.cv", want: extraction.MimePlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mimeForPath(tt.file))
		})
	}
}
