package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdict-ml/verdict/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "mlp", cfg.Model)
	assert.Equal(t, 2, cfg.Epochs)
	assert.Equal(t, 128, cfg.BatchSize)
	assert.InDelta(t, 0.001, cfg.LearningRate, 1e-12)
	assert.Equal(t, 5000, cfg.VocabSize)
	assert.Equal(t, 0, cfg.SkipTop)
	assert.Equal(t, 500, cfg.MaxLen)
	assert.Equal(t, "data", cfg.DataDir)

	require.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "model: cnn\nepochs: 5\nvocabSize: 2000\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "cnn", cfg.Model)
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, 2000, cfg.VocabSize)

	// Untouched values keep their defaults
	assert.Equal(t, 128, cfg.BatchSize)
	assert.Equal(t, 500, cfg.MaxLen)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unterminated"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: transformer\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad model", func(c *config.Config) { c.Model = "rnn" }},
		{"zero epochs", func(c *config.Config) { c.Epochs = 0 }},
		{"negative batch", func(c *config.Config) { c.BatchSize = -1 }},
		{"zero learning rate", func(c *config.Config) { c.LearningRate = 0 }},
		{"tiny vocab", func(c *config.Config) { c.VocabSize = 1 }},
		{"negative skip-top", func(c *config.Config) { c.SkipTop = -1 }},
		{"zero max length", func(c *config.Config) { c.MaxLen = 0 }},
		{"odd cnn max length", func(c *config.Config) { c.Model = "cnn"; c.MaxLen = 501 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_CNNEvenMaxLen(t *testing.T) {
	cfg := config.Default()
	cfg.Model = "cnn"

	assert.NoError(t, cfg.Validate())

	cfg.MaxLen = 400
	assert.NoError(t, cfg.Validate())

	// The mlp has no pooling layer, so odd widths stay legal.
	cfg.Model = "mlp"
	cfg.MaxLen = 501
	assert.NoError(t, cfg.Validate())
}
