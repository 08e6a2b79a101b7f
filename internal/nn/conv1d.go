package nn

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// Conv1D is a 1D convolutional layer over sequences.
//
// Performs convolution: output = Conv1D(input, weight) + bias
//
// Input shape:  [batch, in_channels, length]
// Weight shape: [out_channels, in_channels, kernel_size]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_length]
//
// Where:
//
//	out_length = (length + 2*padding - kernel_size) / stride + 1
//
// With kernel_size 3, stride 1 and padding 1 the output length equals the
// input length ("same" convolution).
type Conv1D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  int
	stride      int
	padding     int
	useBias     bool

	weight *Parameter[B] // [out_channels, in_channels, kernel_size]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConv1D creates a new 1D convolutional layer with Xavier initialization.
//
// Initialization:
//   - Weights: Xavier/Glorot uniform with fan_in = in_channels * kernel_size
//   - Bias: Zeros
func NewConv1D[B tensor.Backend](
	inChannels, outChannels int,
	kernelSize int,
	stride, padding int,
	useBias bool,
	backend B,
) *Conv1D[B] {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv1d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	if kernelSize <= 0 {
		panic(fmt.Sprintf("conv1d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv1d: invalid stride %d", stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("conv1d: invalid padding %d", padding))
	}

	weightShape := tensor.Shape{outChannels, inChannels, kernelSize}
	fanIn := inChannels * kernelSize
	fanOut := outChannels * kernelSize
	weightParam := NewParameter("conv1d.weight", Xavier(fanIn, fanOut, weightShape, backend))

	var biasParam *Parameter[B]
	if useBias {
		biasParam = NewParameter("conv1d.bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &Conv1D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		weight:      weightParam,
		bias:        biasParam,
		backend:     backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, length]
// Output: [batch, out_channels, out_length]
func (c *Conv1D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 3 {
		panic(fmt.Sprintf("conv1d: expected 3D input [N,C,L], got %dD", len(inputShape)))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Sprintf("conv1d: input channels %d != expected %d", inputShape[1], c.inChannels))
	}

	outputRaw := c.backend.Conv1D(
		input.Raw(),
		c.weight.Tensor().Raw(),
		c.stride,
		c.padding,
	)

	output := tensor.New[float32, B](outputRaw, c.backend)

	if c.useBias {
		// Reshape bias to [1, out_channels, 1] for broadcasting over batch
		// and sequence positions. Done through the Tensor API so the reshape
		// is recorded on the tape.
		biasReshaped := c.bias.Tensor().Reshape(1, c.outChannels, 1)
		output = output.Add(biasReshaped)
	}

	return output
}

// Parameters returns all trainable parameters.
func (c *Conv1D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// Weight returns the weight parameter.
func (c *Conv1D[B]) Weight() *Parameter[B] {
	return c.weight
}
