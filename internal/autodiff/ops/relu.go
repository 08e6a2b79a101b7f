package ops

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	input  *tensor.RawTensor // x
	output *tensor.RawTensor // max(0, x)
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient by masking positions where the input
// was not positive.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	mask := createReLUMask(op.input)
	gradInput := backend.Mul(outputGrad, mask)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor max(0, x).
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}

// createReLUMask creates a binary mask where input > 0.
func createReLUMask(input *tensor.RawTensor) *tensor.RawTensor {
	if input.DType() != tensor.Float32 {
		panic(fmt.Sprintf("relu: unsupported dtype %s (only float32 supported)", input.DType()))
	}

	mask, err := tensor.NewRaw(input.Shape(), input.DType())
	if err != nil {
		panic(fmt.Sprintf("relu: failed to create mask: %v", err))
	}

	inputData := input.AsFloat32()
	maskData := mask.AsFloat32()
	for i, val := range inputData {
		if val > 0 {
			maskData[i] = 1.0
		}
	}

	return mask
}
