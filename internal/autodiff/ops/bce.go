package ops

import (
	"fmt"
	"math"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// bceEpsilon clamps probabilities away from 0 and 1 so log() stays finite.
const bceEpsilon = 1e-7

// BinaryCrossEntropyOp represents the binary cross-entropy loss operation.
//
// Forward:
//
//	Loss = -mean(y*log(p) + (1-y)*log(1-p))
//
// Where p are predicted probabilities (sigmoid outputs) and y are binary
// targets. Probabilities are clamped to [eps, 1-eps] for numerical
// stability.
//
// Backward:
//
//	∂L/∂p = (p - y) / (p * (1 - p)) / batch_size
//
// Assumptions:
//   - Probs shape: [batch_size, 1]
//   - Targets shape: [batch_size, 1] (float32, values 0 or 1)
//   - Output: scalar loss (mean over batch)
type BinaryCrossEntropyOp struct {
	probs   *tensor.RawTensor // Predicted probabilities [batch_size, 1]
	targets *tensor.RawTensor // Binary targets [batch_size, 1]
	output  *tensor.RawTensor // Scalar loss output
}

// NewBinaryCrossEntropyOp creates a new binary cross-entropy operation.
func NewBinaryCrossEntropyOp(probs, targets, output *tensor.RawTensor) *BinaryCrossEntropyOp {
	return &BinaryCrossEntropyOp{
		probs:   probs,
		targets: targets,
		output:  output,
	}
}

// Inputs returns the probability tensor. Targets carry no gradient.
func (op *BinaryCrossEntropyOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.probs}
}

// Output returns the output tensor.
func (op *BinaryCrossEntropyOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes the gradient with respect to the probabilities.
//
// The gradient is averaged over the batch because the forward pass computes
// mean loss, and scaled by the upstream gradient.
func (op *BinaryCrossEntropyOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	probsGrad, err := tensor.NewRaw(op.probs.Shape().Clone(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("bce backward: failed to create gradient: %v", err))
	}

	probs := op.probs.AsFloat32()
	targets := op.targets.AsFloat32()
	grad := probsGrad.AsFloat32()
	gradScale := outputGrad.AsFloat32()[0]
	n := float32(len(probs))

	for i := range probs {
		p := clampProb(probs[i])
		y := targets[i]
		grad[i] = gradScale * (p - y) / (p * (1 - p)) / n
	}

	return []*tensor.RawTensor{probsGrad}
}

// BinaryCrossEntropyForward computes the mean binary cross-entropy loss.
// The result is a single-element tensor of shape [1].
func BinaryCrossEntropyForward(probs, targets *tensor.RawTensor) *tensor.RawTensor {
	if probs.DType() != tensor.Float32 || targets.DType() != tensor.Float32 {
		panic(fmt.Sprintf("bce: unsupported dtypes %s, %s (only float32 supported)", probs.DType(), targets.DType()))
	}
	if !probs.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("bce: shape mismatch: probs %v vs targets %v", probs.Shape(), targets.Shape()))
	}

	result, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("bce: failed to create result: %v", err))
	}

	probsData := probs.AsFloat32()
	targetsData := targets.AsFloat32()

	var total float64
	for i := range probsData {
		p := float64(clampProb(probsData[i]))
		y := float64(targetsData[i])
		total += -(y*math.Log(p) + (1-y)*math.Log(1-p))
	}

	result.AsFloat32()[0] = float32(total / float64(len(probsData)))
	return result
}

func clampProb(p float32) float32 {
	if p < bceEpsilon {
		return bceEpsilon
	}
	if p > 1-bceEpsilon {
		return 1 - bceEpsilon
	}
	return p
}
