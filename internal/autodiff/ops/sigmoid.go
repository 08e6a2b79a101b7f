package ops

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{
		input:  input,
		output: output,
	}
}

// Inputs returns the input tensors.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes the gradient for sigmoid.
//
// dσ/dx = σ(x) * (1 - σ(x))
//
// Since the output σ(x) is already computed, it is reused:
// grad_input = grad_output * output * (1 - output).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	output := op.output

	ones, err := tensor.NewRaw(output.Shape(), output.DType())
	if err != nil {
		panic(fmt.Sprintf("sigmoid: failed to create ones: %v", err))
	}
	data := ones.AsFloat32()
	for i := range data {
		data[i] = 1.0
	}

	oneMinusSigmoid := backend.Sub(ones, output)
	sigmoidDerivative := backend.Mul(output, oneMinusSigmoid)
	inputGrad := backend.Mul(outputGrad, sigmoidDerivative)

	return []*tensor.RawTensor{inputGrad}
}
