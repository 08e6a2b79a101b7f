// Package model defines the two sentiment classifiers: a flat MLP and a
// 1-D convolutional network, both over a learned token embedding.
package model

import (
	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/tensor"
)

// Default architecture hyperparameters shared by both classifiers.
const (
	EmbedDim    = 32  // Embedding vector size
	HiddenDim   = 250 // Fully connected hidden layer width
	ConvFilters = 32  // CNN output channels
	ConvWindow  = 3   // CNN kernel size
	PoolWindow  = 2   // Max pooling window and stride
)

// Model is a binary sentiment classifier over token-id sequences.
type Model[B tensor.Backend] interface {
	// Forward maps token ids [batch, maxLen] to probabilities [batch, 1].
	Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters.
	Parameters() []*nn.Parameter[B]
}

// NumParameters counts the trainable scalars of a model.
func NumParameters[B tensor.Backend](m Model[B]) int {
	total := 0
	for _, param := range m.Parameters() {
		total += param.Tensor().NumElements()
	}
	return total
}
