package model

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/tensor"
)

// SentimentMLP is a fully-connected baseline for binary sentiment
// classification over token-id sequences.
//
// Architecture:
//   - Embedding: vocabSize x 32 learned table
//   - Flatten: [batch, maxLen, 32] -> [batch, maxLen*32]
//   - Hidden: 250 neurons with ReLU activation
//   - Output: 1 neuron with Sigmoid (probability of the positive class)
type SentimentMLP[B tensor.Backend] struct {
	embed *nn.Embedding[B]
	head  *nn.Sequential[B]

	maxLen int
}

// NewSentimentMLP creates the MLP classifier for sequences of maxLen token ids
// drawn from a vocabulary of vocabSize entries.
func NewSentimentMLP[B tensor.Backend](vocabSize, maxLen int, backend B) *SentimentMLP[B] {
	if vocabSize <= 0 || maxLen <= 0 {
		panic(fmt.Sprintf("SentimentMLP: invalid dimensions vocab=%d, maxLen=%d", vocabSize, maxLen))
	}
	return &SentimentMLP[B]{
		embed: nn.NewEmbedding[B](vocabSize, EmbedDim, backend),
		head: nn.NewSequential[B](
			nn.NewFlatten[B](),
			nn.NewLinear[B](maxLen*EmbedDim, HiddenDim, backend),
			nn.NewReLU[B](),
			nn.NewLinear[B](HiddenDim, 1, backend),
			nn.NewSigmoid[B](),
		),
		maxLen: maxLen,
	}
}

// Forward maps token ids [batch, maxLen] to probabilities [batch, 1].
func (m *SentimentMLP[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	shape := indices.Shape()
	if len(shape) != 2 || shape[1] != m.maxLen {
		panic(fmt.Sprintf("SentimentMLP: input must have shape [batch, %d], got %v", m.maxLen, shape))
	}

	// [batch, maxLen] -> [batch, maxLen, embedDim]
	x := m.embed.Forward(indices)

	return m.head.Forward(x)
}

// Parameters returns all trainable parameters of the network.
func (m *SentimentMLP[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0)
	params = append(params, m.embed.Parameters()...)
	params = append(params, m.head.Parameters()...)
	return params
}
