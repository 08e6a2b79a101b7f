package nn

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// embeddingInitScale is the half-width of the uniform distribution used for
// embedding weight initialization. Small initial embeddings keep the first
// epochs stable when most of the table is rarely touched.
const embeddingInitScale = 0.05

// Embedding is a lookup table that maps discrete token ids to dense vectors.
//
// This is the entry layer of both sentiment classifiers, converting token
// ids to continuous embeddings. The embedding vectors are learnable
// parameters.
//
// Architecture:
//   - Weight: [NumEmbed, EmbedDim] learnable parameter
//   - Forward: indices [batch, seq] -> embeddings [batch, seq, EmbedDim]
//   - Backward: gradients scatter-add to weight rows
type Embedding[B tensor.Backend] struct {
	Weight   *Parameter[B] // Embedding weight matrix [NumEmbed, EmbedDim]
	NumEmbed int           // Number of embeddings (vocabulary size)
	EmbedDim int           // Embedding dimension (vector size)
}

// NewEmbedding creates a new Embedding layer.
//
// The embedding weights are initialized from U(-0.05, 0.05). For other
// strategies, initialize the weight tensor manually and pass it to
// NewEmbeddingWithWeight.
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	weight := Uniform(embeddingInitScale, tensor.Shape{numEmbeddings, embeddingDim}, backend)

	return &Embedding[B]{
		Weight:   NewParameter[B]("embedding.weight", weight),
		NumEmbed: numEmbeddings,
		EmbedDim: embeddingDim,
	}
}

// NewEmbeddingWithWeight creates an Embedding layer with pre-initialized
// weights (pretrained vectors, custom init).
func NewEmbeddingWithWeight[B tensor.Backend](weight *tensor.Tensor[float32, B]) *Embedding[B] {
	shape := weight.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("embedding weight must be 2D, got shape %v", shape))
	}

	return &Embedding[B]{
		Weight:   NewParameter[B]("embedding.weight", weight),
		NumEmbed: shape[0],
		EmbedDim: shape[1],
	}
}

// Forward performs embedding lookup.
//
// Maps each index to its corresponding embedding vector. The operation is
// differentiable: gradients flow back to the weight tensor.
//
// Parameters:
//   - indices: Tensor of indices [batch, seq] or any shape of type int32
//
// Returns embeddings with shape [..., EmbedDim].
//
// Panics if any index is out of bounds [0, NumEmbed).
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.Weight.Tensor().Embedding(indices)
}

// Parameters returns the list of trainable parameters.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}
