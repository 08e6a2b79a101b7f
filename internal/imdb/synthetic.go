package imdb

import (
	"math/rand"
)

// Synthetic generates a small artificial dataset for running the pipeline
// without the real corpus and for tests.
//
// Each class draws its token ids from a different region of the vocabulary
// (positive reviews mostly low ranks, negative reviews mostly high ranks),
// so a classifier with any capacity at all can separate them. Review
// lengths vary so padding and truncation are exercised.
func Synthetic(numPerSplit int, cfg Config, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	makeSplit := func() Split {
		split := Split{
			Sequences: make([][]int32, numPerSplit),
			Labels:    make([]float32, numPerSplit),
		}
		for i := 0; i < numPerSplit; i++ {
			label := float32(i % 2)
			length := 20 + rng.Intn(cfg.MaxLen)

			seq := make([]int32, length)
			for j := range seq {
				var id int
				if label == 1 {
					// Positive class clusters in the low ranks
					id = 1 + rng.Intn(cfg.VocabSize/2)
				} else {
					id = cfg.VocabSize/2 + rng.Intn(cfg.VocabSize/2)
				}
				if id >= cfg.VocabSize || id <= cfg.SkipTop {
					id = 0
				}
				seq[j] = int32(id)
			}

			split.Sequences[i] = seq
			split.Labels[i] = label
		}
		return split
	}

	return &Dataset{
		Train:     makeSplit(),
		Test:      makeSplit(),
		VocabSize: cfg.VocabSize,
		MaxLen:    cfg.MaxLen,
	}
}
