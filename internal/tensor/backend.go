package tensor

// Backend defines the interface that compute backends must implement.
// It covers exactly the operation surface the sentiment models exercise.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Sum reduces all elements to a single-element tensor.
	Sum(x *RawTensor) *RawTensor

	// Conv1D slides kernel [C_out, C_in, K] along input [N, C_in, L]
	// producing [N, C_out, L_out] with L_out = (L + 2*padding - K)/stride + 1.
	Conv1D(input, kernel *RawTensor, stride, padding int) *RawTensor

	// Conv1D gradient kernels, used by the autodiff decorator.
	Conv1DInputBackward(input, kernel, outputGrad *RawTensor, stride, padding int) *RawTensor
	Conv1DKernelBackward(input, kernel, outputGrad *RawTensor, stride, padding int) *RawTensor

	// MaxPool1D downsamples input [N, C, L] by taking the maximum in each
	// window of kernelSize, advancing by stride.
	MaxPool1D(input *RawTensor, kernelSize, stride int) *RawTensor

	// Embedding looks up rows of weight [V, E] by int32 indices [N, L],
	// producing [N, L, E].
	Embedding(weight, indices *RawTensor) *RawTensor

	// Name returns the backend name.
	Name() string
}
