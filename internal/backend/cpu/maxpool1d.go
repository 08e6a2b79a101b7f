package cpu

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// MaxPool1D performs max pooling over the last dimension of a
// [batch, channels, length] tensor. Windows that would run past the end of
// the sequence are dropped.
func (cpu *CPUBackend) MaxPool1D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	if input.DType() != tensor.Float32 {
		panic(fmt.Sprintf("maxpool1d: unsupported dtype %s (only float32 supported)", input.DType()))
	}
	inShape := input.Shape()
	if len(inShape) != 3 {
		panic(fmt.Sprintf("maxpool1d: expected input [batch, channels, length], got %v", inShape))
	}

	batch, channels, length := inShape[0], inShape[1], inShape[2]
	if kernelSize > length {
		panic(fmt.Sprintf("maxpool1d: kernel size %d exceeds input length %d", kernelSize, length))
	}
	outLen := (length-kernelSize)/stride + 1

	result, err := tensor.NewRaw(tensor.Shape{batch, channels, outLen}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("maxpool1d: failed to create result tensor: %v", err))
	}

	in := input.AsFloat32()
	out := result.AsFloat32()

	for n := 0; n < batch; n++ {
		for c := 0; c < channels; c++ {
			inBase := (n*channels + c) * length
			outBase := (n*channels + c) * outLen
			for t := 0; t < outLen; t++ {
				start := t * stride
				best := in[inBase+start]
				for k := 1; k < kernelSize; k++ {
					if v := in[inBase+start+k]; v > best {
						best = v
					}
				}
				out[outBase+t] = best
			}
		}
	}
	return result
}
