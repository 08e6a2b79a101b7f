package nn

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// MaxPool1D is a 1D max pooling layer.
//
// Downsamples sequences by taking the maximum over non-overlapping (or
// strided) windows:
//
//	output[n,c,t] = max(input[n,c,t*stride : t*stride+kernel_size])
//
// Input shape:  [batch, channels, length]
// Output shape: [batch, channels, (length - kernel_size)/stride + 1]
//
// MaxPool1D has no trainable parameters.
type MaxPool1D[B tensor.Backend] struct {
	kernelSize int
	stride     int
	backend    B
}

// NewMaxPool1D creates a new 1D max pooling layer.
func NewMaxPool1D[B tensor.Backend](kernelSize, stride int, backend B) *MaxPool1D[B] {
	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool1d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool1d: invalid stride %d", stride))
	}

	return &MaxPool1D[B]{
		kernelSize: kernelSize,
		stride:     stride,
		backend:    backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, channels, length]
// Output: [batch, channels, out_length]
func (m *MaxPool1D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 3 {
		panic(fmt.Sprintf("maxpool1d: expected 3D input [N,C,L], got %dD", len(inputShape)))
	}

	outputRaw := m.backend.MaxPool1D(input.Raw(), m.kernelSize, m.stride)
	return tensor.New[float32, B](outputRaw, m.backend)
}

// Parameters returns an empty slice (MaxPool1D has no trainable parameters).
func (m *MaxPool1D[B]) Parameters() []*Parameter[B] {
	return nil
}
