package cpu

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// Embedding gathers rows of a [vocabSize, embedDim] weight table by integer
// index. The output shape is the indices' shape with embedDim appended.
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	if weight.DType() != tensor.Float32 {
		panic(fmt.Sprintf("embedding: unsupported weight dtype %s (only float32 supported)", weight.DType()))
	}
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: unsupported index dtype %s (only int32 supported)", indices.DType()))
	}
	wShape := weight.Shape()
	if len(wShape) != 2 {
		panic(fmt.Sprintf("embedding: expected weight [vocabSize, embedDim], got %v", wShape))
	}

	vocabSize, embedDim := wShape[0], wShape[1]
	idxShape := indices.Shape()
	outShape := make(tensor.Shape, 0, len(idxShape)+1)
	outShape = append(outShape, idxShape...)
	outShape = append(outShape, embedDim)

	result, err := tensor.NewRaw(outShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("embedding: failed to create result tensor: %v", err))
	}

	w := weight.AsFloat32()
	idx := indices.AsInt32()
	out := result.AsFloat32()

	for i, id := range idx {
		if id < 0 || int(id) >= vocabSize {
			panic(fmt.Sprintf("embedding: index %d out of range [0, %d)", id, vocabSize))
		}
		copy(out[i*embedDim:(i+1)*embedDim], w[int(id)*embedDim:(int(id)+1)*embedDim])
	}
	return result
}
