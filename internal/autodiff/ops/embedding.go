package ops

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// EmbeddingOp represents an embedding lookup operation.
//
// Forward: output[i] = weight[indices[i]]
//
// Backward:
//
//	For each index i, accumulate grad_output[i] into grad_weight[indices[i]].
//	This is a scatter-add: gradients for tokens that appear more than once
//	in the batch are summed.
type EmbeddingOp struct {
	weight  *tensor.RawTensor // Embedding weight [numEmbeddings, embeddingDim]
	indices *tensor.RawTensor // Index tensor (int32)
	output  *tensor.RawTensor // Output embeddings
}

// NewEmbeddingOp creates a new embedding operation.
func NewEmbeddingOp(weight, indices, output *tensor.RawTensor) *EmbeddingOp {
	return &EmbeddingOp{
		weight:  weight,
		indices: indices,
		output:  output,
	}
}

// Inputs returns the weight tensor. Indices are integers and carry no
// gradient.
func (op *EmbeddingOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.weight}
}

// Output returns the output tensor.
func (op *EmbeddingOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes gradients for the embedding weights via scatter-add.
func (op *EmbeddingOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	weightShape := op.weight.Shape()
	numEmbeddings := weightShape[0]
	embeddingDim := weightShape[1]

	gradWeight, err := tensor.NewRaw(weightShape.Clone(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("embedding backward: failed to create gradient: %v", err))
	}

	gradWeightData := gradWeight.AsFloat32()
	indicesData := op.indices.AsInt32()
	gradOutputData := gradOutput.AsFloat32()

	for i, idx := range indicesData {
		if idx < 0 || int(idx) >= numEmbeddings {
			panic(fmt.Sprintf("embedding backward: index %d out of range [0, %d)", idx, numEmbeddings))
		}

		gradOutOffset := i * embeddingDim
		gradWeightOffset := int(idx) * embeddingDim
		for j := 0; j < embeddingDim; j++ {
			gradWeightData[gradWeightOffset+j] += gradOutputData[gradOutOffset+j]
		}
	}

	return []*tensor.RawTensor{gradWeight}
}
