// Package imdb loads the IMDB movie-review corpus as frequency-rank token
// sequences for binary sentiment classification.
//
// Reviews are encoded the way classic text-classification pipelines encode
// them: each word is replaced by its frequency rank over the whole corpus
// (rank 1 = most frequent word). Rank 0 is reserved: it marks padding,
// out-of-vocabulary words and skipped high-frequency words.
//
// The pipeline is:
//
//	download aclImdb_v1.tar.gz -> tokenize -> rank-encode -> binary cache
//
// The cache stores full (uncut) ranks, so a single cache file serves any
// VocabSize/SkipTop configuration; cutoffs are applied at load time.
package imdb

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default hyperparameters for the sentiment pipeline.
const (
	DefaultVocabSize = 5000
	DefaultSkipTop   = 0
	DefaultMaxLen    = 500

	// DefaultSourceURL is the Stanford AI lab distribution of the corpus.
	DefaultSourceURL = "https://ai.stanford.edu/~amaas/data/sentiment/aclImdb_v1.tar.gz"

	cacheFileName   = "imdb_ranks.bin"
	archiveFileName = "aclImdb_v1.tar.gz"
)

// Config controls corpus location and encoding cutoffs.
type Config struct {
	CacheDir  string // Directory for the downloaded archive and binary cache
	SourceURL string // Corpus tarball URL
	VocabSize int    // Ranks >= VocabSize collapse to 0
	SkipTop   int    // Ranks <= SkipTop collapse to 0 (skip most frequent words)
	MaxLen    int    // Fixed review width after padding/truncation
}

// DefaultConfig returns the standard configuration: 5000-word vocabulary,
// no skip-top, 500-token reviews, cache under "data/".
func DefaultConfig() Config {
	return Config{
		CacheDir:  "data",
		SourceURL: DefaultSourceURL,
		VocabSize: DefaultVocabSize,
		SkipTop:   DefaultSkipTop,
		MaxLen:    DefaultMaxLen,
	}
}

// Split holds one side of the train/test partition.
type Split struct {
	Sequences [][]int32 // Rank-encoded reviews, varying length
	Labels    []float32 // 0 = negative, 1 = positive
}

// NumSamples returns the number of reviews in the split.
func (s *Split) NumSamples() int {
	return len(s.Sequences)
}

// Dataset is the full corpus with encoding cutoffs already applied.
type Dataset struct {
	Train Split
	Test  Split

	VocabSize int // Cutoff the sequences were encoded with
	MaxLen    int // Width Pad will produce
}

// Load returns the corpus with the config's cutoffs applied.
//
// The binary cache is used when present; otherwise the tarball is
// downloaded (unless already on disk), the corpus is tokenized and
// rank-encoded, and the cache is written for the next run.
func Load(cfg Config) (*Dataset, error) {
	if cfg.VocabSize <= 1 {
		return nil, fmt.Errorf("imdb: vocab size must be > 1, got %d", cfg.VocabSize)
	}
	if cfg.SkipTop < 0 {
		return nil, fmt.Errorf("imdb: skip-top must be >= 0, got %d", cfg.SkipTop)
	}
	if cfg.MaxLen <= 0 {
		return nil, fmt.Errorf("imdb: max length must be > 0, got %d", cfg.MaxLen)
	}

	cachePath := filepath.Join(cfg.CacheDir, cacheFileName)

	raw, err := readCache(cachePath)
	if os.IsNotExist(err) {
		raw, err = buildCorpus(cfg)
		if err != nil {
			return nil, err
		}
		if werr := writeCache(cachePath, raw); werr != nil {
			return nil, fmt.Errorf("imdb: failed to write cache: %w", werr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("imdb: failed to read cache %s: %w", cachePath, err)
	}

	return raw.withCutoffs(cfg), nil
}

// rawCorpus holds full-rank sequences, before vocabulary cutoffs.
type rawCorpus struct {
	train Split
	test  Split
}

// withCutoffs applies the vocabulary and skip-top cutoffs, collapsing
// excluded ranks to 0. Sequence lengths are preserved.
func (r *rawCorpus) withCutoffs(cfg Config) *Dataset {
	cut := func(in Split) Split {
		out := Split{
			Sequences: make([][]int32, len(in.Sequences)),
			Labels:    in.Labels,
		}
		for i, seq := range in.Sequences {
			ids := make([]int32, len(seq))
			for j, rank := range seq {
				if int(rank) >= cfg.VocabSize || int(rank) <= cfg.SkipTop {
					ids[j] = 0
				} else {
					ids[j] = rank
				}
			}
			out.Sequences[i] = ids
		}
		return out
	}

	return &Dataset{
		Train:     cut(r.train),
		Test:      cut(r.test),
		VocabSize: cfg.VocabSize,
		MaxLen:    cfg.MaxLen,
	}
}

// buildCorpus downloads the tarball if needed and encodes it.
func buildCorpus(cfg Config) (*rawCorpus, error) {
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("imdb: failed to create cache dir: %w", err)
	}

	archivePath := filepath.Join(cfg.CacheDir, archiveFileName)
	if _, err := os.Stat(archivePath); os.IsNotExist(err) {
		url := cfg.SourceURL
		if url == "" {
			url = DefaultSourceURL
		}
		if derr := download(url, archivePath); derr != nil {
			return nil, fmt.Errorf("imdb: download failed: %w", derr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("imdb: failed to stat archive: %w", err)
	}

	reviews, err := readArchive(archivePath)
	if err != nil {
		return nil, fmt.Errorf("imdb: failed to read archive: %w", err)
	}

	return encodeCorpus(reviews), nil
}
