package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}

	if cfg.Model != "mlp" {
		t.Errorf("Expected default model mlp, got %s", cfg.Model)
	}
	if cfg.Epochs != 2 || cfg.BatchSize != 128 {
		t.Errorf("Expected defaults epochs=2 batch=128, got %d/%d", cfg.Epochs, cfg.BatchSize)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-model", "cnn",
		"-epochs", "3",
		"-batch", "64",
		"-lr", "0.01",
		"-vocab", "2000",
		"-maxlen", "200",
		"-synthetic",
	})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}

	if cfg.Model != "cnn" {
		t.Errorf("Expected model cnn, got %s", cfg.Model)
	}
	if cfg.Epochs != 3 || cfg.BatchSize != 64 {
		t.Errorf("Expected epochs=3 batch=64, got %d/%d", cfg.Epochs, cfg.BatchSize)
	}
	if cfg.LearningRate != 0.01 {
		t.Errorf("Expected lr 0.01, got %f", cfg.LearningRate)
	}
	if cfg.VocabSize != 2000 || cfg.MaxLen != 200 {
		t.Errorf("Expected vocab=2000 maxlen=200, got %d/%d", cfg.VocabSize, cfg.MaxLen)
	}
	if !cfg.Synthetic {
		t.Error("Expected synthetic mode enabled")
	}
}

func TestParseConfig_FileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "model: cnn\nepochs: 7\nbatchSize: 32\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := parseConfig([]string{"-config", path, "-epochs", "1"})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}

	// File values apply, explicit flags win
	if cfg.Model != "cnn" {
		t.Errorf("Expected model cnn from file, got %s", cfg.Model)
	}
	if cfg.BatchSize != 32 {
		t.Errorf("Expected batch 32 from file, got %d", cfg.BatchSize)
	}
	if cfg.Epochs != 1 {
		t.Errorf("Expected epochs 1 from flag override, got %d", cfg.Epochs)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := parseConfig([]string{"-model", "rnn"}); err == nil {
		t.Error("Expected error for unknown model")
	}
	if _, err := parseConfig([]string{"-epochs", "0"}); err == nil {
		t.Error("Expected error for zero epochs")
	}
}
