package imdb

import (
	"fmt"
	"math/rand"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// Batch represents a mini-batch for training.
type Batch[B tensor.Backend] struct {
	Inputs *tensor.Tensor[int32, B]   // Token ids [batch, maxLen]
	Labels *tensor.Tensor[float32, B] // Targets [batch, 1]
	Size   int
}

// CreateBatches pads a split to fixed width and cuts it into mini-batches.
//
// Parameters:
//   - split: One side of the dataset
//   - maxLen: Fixed review width (pre-pad / pre-truncate)
//   - batchSize: Size of each mini-batch
//   - rng: Shuffle source; nil disables shuffling
//   - backend: Tensor backend to use
//
// Returns a slice of batches; the last batch may be smaller if the split
// does not divide evenly.
func CreateBatches[B tensor.Backend](
	split *Split,
	maxLen, batchSize int,
	rng *rand.Rand,
	backend B,
) ([]*Batch[B], error) {
	numSamples := split.NumSamples()
	if numSamples != len(split.Labels) {
		return nil, fmt.Errorf("imdb: sequences and labels length mismatch: %d vs %d",
			numSamples, len(split.Labels))
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("imdb: batch size must be > 0, got %d", batchSize)
	}

	padded := Pad(split.Sequences, maxLen)

	indices := make([]int, numSamples)
	for i := range indices {
		indices[i] = i
	}
	if rng != nil {
		rng.Shuffle(numSamples, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	numBatches := (numSamples + batchSize - 1) / batchSize
	batches := make([]*Batch[B], 0, numBatches)

	for start := 0; start < numSamples; start += batchSize {
		end := start + batchSize
		if end > numSamples {
			end = numSamples
		}
		size := end - start

		inputsRaw, err := tensor.NewRaw(tensor.Shape{size, maxLen}, tensor.Int32)
		if err != nil {
			return nil, fmt.Errorf("imdb: failed to create input tensor: %w", err)
		}
		labelsRaw, err := tensor.NewRaw(tensor.Shape{size, 1}, tensor.Float32)
		if err != nil {
			return nil, fmt.Errorf("imdb: failed to create label tensor: %w", err)
		}

		inputs := inputsRaw.AsInt32()
		labels := labelsRaw.AsFloat32()
		for row := 0; row < size; row++ {
			idx := indices[start+row]
			copy(inputs[row*maxLen:(row+1)*maxLen], padded[idx])
			labels[row] = split.Labels[idx]
		}

		batches = append(batches, &Batch[B]{
			Inputs: tensor.New[int32, B](inputsRaw, backend),
			Labels: tensor.New[float32, B](labelsRaw, backend),
			Size:   size,
		})
	}

	return batches, nil
}
