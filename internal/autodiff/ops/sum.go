package ops

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// SumOp represents a full reduction: output = sum(x).
//
// Backward pass: the scalar gradient broadcasts back to every input element.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor // Shape [1]
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		input:  input,
		output: output,
	}
}

// Inputs returns the input tensors.
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward broadcasts the output gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape().Clone(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("sum backward: failed to create gradient: %v", err))
	}

	g := outputGrad.AsFloat32()[0]
	data := gradInput.AsFloat32()
	for i := range data {
		data[i] = g
	}

	return []*tensor.RawTensor{gradInput}
}
