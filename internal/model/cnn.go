package model

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/tensor"
)

// SentimentCNN is a 1-D convolutional classifier for binary sentiment over
// token-id sequences. The convolution slides over sequence positions so
// adjacent tokens are combined before the fully-connected head, which lets
// the model pick up short phrases the MLP treats as unrelated positions.
//
// Architecture:
//   - Embedding: vocabSize x 32 learned table
//   - Transpose: [batch, maxLen, 32] -> [batch, 32, maxLen] (channels first)
//   - Conv1D: 32 -> 32 channels, kernel 3, stride 1, same padding
//   - ReLU, then MaxPool1D with window 2 and stride 2
//   - Flatten -> Linear(32*maxLen/2, 250) -> ReLU -> Linear(250, 1) -> Sigmoid
type SentimentCNN[B tensor.Backend] struct {
	embed *nn.Embedding[B]
	trunk *nn.Sequential[B]

	maxLen int
}

// NewSentimentCNN creates the CNN classifier. maxLen must be even so the
// pooled sequence length is exact.
func NewSentimentCNN[B tensor.Backend](vocabSize, maxLen int, backend B) *SentimentCNN[B] {
	if vocabSize <= 0 || maxLen <= 0 {
		panic(fmt.Sprintf("SentimentCNN: invalid dimensions vocab=%d, maxLen=%d", vocabSize, maxLen))
	}
	if maxLen%PoolWindow != 0 {
		panic(fmt.Sprintf("SentimentCNN: maxLen %d must be divisible by %d", maxLen, PoolWindow))
	}
	pooledLen := maxLen / PoolWindow

	return &SentimentCNN[B]{
		embed: nn.NewEmbedding[B](vocabSize, EmbedDim, backend),
		trunk: nn.NewSequential[B](
			nn.NewConv1D[B](EmbedDim, ConvFilters, ConvWindow, 1, ConvWindow/2, true, backend),
			nn.NewReLU[B](),
			nn.NewMaxPool1D[B](PoolWindow, PoolWindow, backend),
			nn.NewFlatten[B](),
			nn.NewLinear[B](ConvFilters*pooledLen, HiddenDim, backend),
			nn.NewReLU[B](),
			nn.NewLinear[B](HiddenDim, 1, backend),
			nn.NewSigmoid[B](),
		),
		maxLen: maxLen,
	}
}

// Forward maps token ids [batch, maxLen] to probabilities [batch, 1].
func (m *SentimentCNN[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	shape := indices.Shape()
	if len(shape) != 2 || shape[1] != m.maxLen {
		panic(fmt.Sprintf("SentimentCNN: input must have shape [batch, %d], got %v", m.maxLen, shape))
	}

	// [batch, maxLen] -> [batch, maxLen, embedDim]
	x := m.embed.Forward(indices)

	// Conv1D expects channels first: [batch, embedDim, maxLen]
	x = x.Transpose(0, 2, 1)

	return m.trunk.Forward(x)
}

// Parameters returns all trainable parameters of the network.
func (m *SentimentCNN[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0)
	params = append(params, m.embed.Parameters()...)
	params = append(params, m.trunk.Parameters()...)
	return params
}
