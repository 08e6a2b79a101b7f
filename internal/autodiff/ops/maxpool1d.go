package ops

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// MaxPool1DOp records a max pooling operation for autodiff.
//
// Forward:
//
//	output[n,c,t] = max(input[n,c,t*stride+k] for k in kernel)
//
// Backward:
//   - Gradients flow only to the position that held the max value
//   - All other positions in the pooling window receive zero gradient
//
// Unlike Conv1D which has learnable parameters, MaxPool1D only has input
// gradients.
type MaxPool1DOp struct {
	input      *tensor.RawTensor
	output     *tensor.RawTensor
	maxIndices []int // Flat input index of the max position per output element
	kernelSize int
	stride     int
}

// NewMaxPool1DOp creates a new MaxPool1D operation. The max positions are
// computed here, during the forward pass, so backward can route gradients
// without re-running the pooling.
func NewMaxPool1DOp(input, output *tensor.RawTensor, kernelSize, stride int) *MaxPool1DOp {
	return &MaxPool1DOp{
		input:      input,
		output:     output,
		maxIndices: computeMaxIndices(input, output, kernelSize, stride),
		kernelSize: kernelSize,
		stride:     stride,
	}
}

// computeMaxIndices finds which input position had the max value for each
// output position.
func computeMaxIndices(input, output *tensor.RawTensor, kernelSize, stride int) []int {
	if input.DType() != tensor.Float32 {
		panic(fmt.Sprintf("maxpool1d: unsupported dtype %s", input.DType()))
	}

	inShape := input.Shape()
	outShape := output.Shape()
	batch, channels, length := inShape[0], inShape[1], inShape[2]
	outLen := outShape[2]

	in := input.AsFloat32()
	maxIndices := make([]int, batch*channels*outLen)

	for n := 0; n < batch; n++ {
		for c := 0; c < channels; c++ {
			inBase := (n*channels + c) * length
			outBase := (n*channels + c) * outLen
			for t := 0; t < outLen; t++ {
				start := t * stride
				bestIdx := inBase + start
				best := in[bestIdx]
				for k := 1; k < kernelSize; k++ {
					if v := in[inBase+start+k]; v > best {
						best = v
						bestIdx = inBase + start + k
					}
				}
				maxIndices[outBase+t] = bestIdx
			}
		}
	}

	return maxIndices
}

// Inputs returns the input tensors.
func (op *MaxPool1DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *MaxPool1DOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward routes each output gradient to the input position that produced
// the max.
func (op *MaxPool1DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape().Clone(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("maxpool1d backward: failed to create gradient: %v", err))
	}

	gradOut := outputGrad.AsFloat32()
	gradIn := gradInput.AsFloat32()
	for i, srcIdx := range op.maxIndices {
		gradIn[srcIdx] += gradOut[i]
	}

	return []*tensor.RawTensor{gradInput}
}
