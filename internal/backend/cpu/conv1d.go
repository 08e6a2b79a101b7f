package cpu

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// Conv1D performs a 1D cross-correlation over the last dimension.
//
//	input:  [batch, inChannels, length]
//	kernel: [outChannels, inChannels, kernelSize]
//	output: [batch, outChannels, outLength]
//
// where outLength = (length + 2*padding - kernelSize)/stride + 1. Padding
// positions read as zero.
func (cpu *CPUBackend) Conv1D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	batch, inC, length, outC, kSize := conv1DDims(input, kernel)
	outLen := conv1DOutLen(length, kSize, stride, padding)

	result, err := tensor.NewRaw(tensor.Shape{batch, outC, outLen}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("conv1d: failed to create result tensor: %v", err))
	}

	in := input.AsFloat32()
	w := kernel.AsFloat32()
	out := result.AsFloat32()

	for n := 0; n < batch; n++ {
		for co := 0; co < outC; co++ {
			for t := 0; t < outLen; t++ {
				var acc float32
				for ci := 0; ci < inC; ci++ {
					inBase := (n*inC + ci) * length
					wBase := (co*inC + ci) * kSize
					for k := 0; k < kSize; k++ {
						pos := t*stride - padding + k
						if pos < 0 || pos >= length {
							continue
						}
						acc += in[inBase+pos] * w[wBase+k]
					}
				}
				out[(n*outC+co)*outLen+t] = acc
			}
		}
	}
	return result
}

// Conv1DInputBackward computes the gradient of a Conv1D output with respect
// to its input. outputGrad has the forward output's shape.
func (cpu *CPUBackend) Conv1DInputBackward(input, kernel, outputGrad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	batch, inC, length, outC, kSize := conv1DDims(input, kernel)
	outLen := conv1DOutLen(length, kSize, stride, padding)

	result, err := tensor.NewRaw(input.Shape().Clone(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("conv1d: failed to create input gradient tensor: %v", err))
	}

	w := kernel.AsFloat32()
	gradOut := outputGrad.AsFloat32()
	gradIn := result.AsFloat32()

	for n := 0; n < batch; n++ {
		for co := 0; co < outC; co++ {
			for t := 0; t < outLen; t++ {
				g := gradOut[(n*outC+co)*outLen+t]
				if g == 0 {
					continue
				}
				for ci := 0; ci < inC; ci++ {
					inBase := (n*inC + ci) * length
					wBase := (co*inC + ci) * kSize
					for k := 0; k < kSize; k++ {
						pos := t*stride - padding + k
						if pos < 0 || pos >= length {
							continue
						}
						gradIn[inBase+pos] += g * w[wBase+k]
					}
				}
			}
		}
	}
	return result
}

// Conv1DKernelBackward computes the gradient of a Conv1D output with respect
// to its kernel.
func (cpu *CPUBackend) Conv1DKernelBackward(input, kernel, outputGrad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	batch, inC, length, outC, kSize := conv1DDims(input, kernel)
	outLen := conv1DOutLen(length, kSize, stride, padding)

	result, err := tensor.NewRaw(kernel.Shape().Clone(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("conv1d: failed to create kernel gradient tensor: %v", err))
	}

	in := input.AsFloat32()
	gradOut := outputGrad.AsFloat32()
	gradW := result.AsFloat32()

	for n := 0; n < batch; n++ {
		for co := 0; co < outC; co++ {
			for t := 0; t < outLen; t++ {
				g := gradOut[(n*outC+co)*outLen+t]
				if g == 0 {
					continue
				}
				for ci := 0; ci < inC; ci++ {
					inBase := (n*inC + ci) * length
					wBase := (co*inC + ci) * kSize
					for k := 0; k < kSize; k++ {
						pos := t*stride - padding + k
						if pos < 0 || pos >= length {
							continue
						}
						gradW[wBase+k] += g * in[inBase+pos]
					}
				}
			}
		}
	}
	return result
}

func conv1DDims(input, kernel *tensor.RawTensor) (batch, inC, length, outC, kSize int) {
	if input.DType() != tensor.Float32 || kernel.DType() != tensor.Float32 {
		panic(fmt.Sprintf("conv1d: unsupported dtypes %s, %s (only float32 supported)", input.DType(), kernel.DType()))
	}
	inShape, kShape := input.Shape(), kernel.Shape()
	if len(inShape) != 3 {
		panic(fmt.Sprintf("conv1d: expected input [batch, channels, length], got %v", inShape))
	}
	if len(kShape) != 3 {
		panic(fmt.Sprintf("conv1d: expected kernel [outChannels, inChannels, kernelSize], got %v", kShape))
	}
	if inShape[1] != kShape[1] {
		panic(fmt.Sprintf("conv1d: channel mismatch: input %v vs kernel %v", inShape, kShape))
	}
	return inShape[0], inShape[1], inShape[2], kShape[0], kShape[2]
}

func conv1DOutLen(length, kSize, stride, padding int) int {
	outLen := (length+2*padding-kSize)/stride + 1
	if outLen <= 0 {
		panic(fmt.Sprintf("conv1d: kernel size %d with padding %d does not fit input length %d", kSize, padding, length))
	}
	return outLen
}
