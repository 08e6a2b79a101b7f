package ops

import "github.com/verdict-ml/verdict/internal/tensor"

// Conv1DOp records a 1D convolution operation for autodiff.
//
// Forward:
//
//	output = Conv1D(input [N,C_in,L], kernel [C_out,C_in,K], stride, padding)
//
// Backward (gradients):
//   - d_input: "transposed convolution" of d_output with the kernel
//   - d_kernel: correlation of the input with d_output
//
// Both are delegated to the backend's dedicated backward kernels.
type Conv1DOp struct {
	input   *tensor.RawTensor
	kernel  *tensor.RawTensor
	output  *tensor.RawTensor
	stride  int
	padding int
}

// NewConv1DOp creates a new Conv1D operation.
func NewConv1DOp(input, kernel, output *tensor.RawTensor, stride, padding int) *Conv1DOp {
	return &Conv1DOp{
		input:   input,
		kernel:  kernel,
		output:  output,
		stride:  stride,
		padding: padding,
	}
}

// Inputs returns the input tensors [input, kernel].
func (op *Conv1DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input, op.kernel}
}

// Output returns the output tensor.
func (op *Conv1DOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes gradients for the convolution input and kernel.
func (op *Conv1DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputGrad := backend.Conv1DInputBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)
	kernelGrad := backend.Conv1DKernelBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)

	return []*tensor.RawTensor{inputGrad, kernelGrad}
}
