// Package config loads training configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/verdict-ml/verdict/internal/model"
	"gopkg.in/yaml.v3"
)

// Config holds all training and dataset hyperparameters.
//
// Values not present in the YAML file keep their defaults; command-line
// flags override both.
type Config struct {
	Model        string  `yaml:"model"`        // "mlp" or "cnn"
	Epochs       int     `yaml:"epochs"`       // Training epochs
	BatchSize    int     `yaml:"batchSize"`    // Mini-batch size
	LearningRate float64 `yaml:"learningRate"` // Adam learning rate
	VocabSize    int     `yaml:"vocabSize"`    // Vocabulary cutoff
	SkipTop      int     `yaml:"skipTop"`      // Most-frequent ranks to drop
	MaxLen       int     `yaml:"maxLen"`       // Fixed review width
	DataDir      string  `yaml:"dataDir"`      // Corpus cache directory
	PlotPath     string  `yaml:"plotPath"`     // Box-plot output ("" disables)
	Seed         int64   `yaml:"seed"`         // Shuffle/init seed
	Synthetic    bool    `yaml:"synthetic"`    // Use generated data instead of the corpus
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Model:        "mlp",
		Epochs:       2,
		BatchSize:    128,
		LearningRate: 0.001,
		VocabSize:    5000,
		SkipTop:      0,
		MaxLen:       500,
		DataDir:      "data",
		PlotPath:     "review_lengths.png",
		Seed:         42,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and the model name.
func (c Config) Validate() error {
	if c.Model != "mlp" && c.Model != "cnn" {
		return fmt.Errorf("config: unknown model %q (want mlp or cnn)", c.Model)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("config: epochs must be > 0, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: batch size must be > 0, got %d", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("config: learning rate must be > 0, got %g", c.LearningRate)
	}
	if c.VocabSize <= 1 {
		return fmt.Errorf("config: vocab size must be > 1, got %d", c.VocabSize)
	}
	if c.SkipTop < 0 {
		return fmt.Errorf("config: skip-top must be >= 0, got %d", c.SkipTop)
	}
	if c.MaxLen <= 0 {
		return fmt.Errorf("config: max length must be > 0, got %d", c.MaxLen)
	}
	if c.Model == "cnn" && c.MaxLen%model.PoolWindow != 0 {
		return fmt.Errorf("config: cnn max length must be divisible by %d, got %d",
			model.PoolWindow, c.MaxLen)
	}
	return nil
}
