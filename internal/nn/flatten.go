package nn

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// Flatten collapses all dimensions after the batch dimension into one.
//
// Input shape:  [batch, d1, d2, ...]
// Output shape: [batch, d1*d2*...]
//
// Used to bridge embedding or convolutional feature maps into fully
// connected layers. The reshape is recorded on the autodiff tape so
// gradients flow back through it.
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a new Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward reshapes the input to [batch, features].
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: expected at least 2D input, got shape %v", shape))
	}

	features := 1
	for _, dim := range shape[1:] {
		features *= dim
	}

	return input.Reshape(shape[0], features)
}

// Parameters returns an empty slice (Flatten has no trainable parameters).
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}
