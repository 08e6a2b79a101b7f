package nn

import (
	"fmt"
	"math"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// BinaryCrossEntropyBackend is an interface for backends that support binary
// cross-entropy loss.
type BinaryCrossEntropyBackend interface {
	BinaryCrossEntropy(probs, targets *tensor.RawTensor) *tensor.RawTensor
}

// BCELoss computes binary cross-entropy loss.
//
// Loss = -mean(y*log(p) + (1-y)*log(1-p))
//
// Expects predictions to be probabilities (sigmoid outputs) in (0, 1) and
// targets to be 0 or 1. Used with a Sigmoid output layer for binary
// classification.
//
// Example:
//
//	bce := nn.NewBCELoss[Backend]()
//	probs := model.Forward(input)          // [batch, 1] sigmoid outputs
//	loss := bce.Forward(probs, targets)    // scalar
type BCELoss[B tensor.Backend] struct{}

// NewBCELoss creates a new binary cross-entropy loss function.
func NewBCELoss[B tensor.Backend]() *BCELoss[B] {
	return &BCELoss[B]{}
}

// Forward computes the BCE loss.
//
// Parameters:
//   - predictions: Predicted probabilities [batch_size, 1]
//   - targets: Binary ground truth labels [batch_size, 1] (float32, 0 or 1)
//
// Returns a single-element loss tensor (mean over batch).
func (l *BCELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("BCELoss: shape mismatch: predictions %v vs targets %v",
			predictions.Shape(), targets.Shape()))
	}

	backend := predictions.Backend()

	// Gradient-capable backends record the loss on the tape.
	if bceBackend, ok := any(backend).(BinaryCrossEntropyBackend); ok {
		resultRaw := bceBackend.BinaryCrossEntropy(predictions.Raw(), targets.Raw())
		return tensor.New[float32, B](resultRaw, backend)
	}

	// Manual fallback for plain backends. No gradients are recorded.
	probs := predictions.Raw().AsFloat32()
	labels := targets.Raw().AsFloat32()

	const eps = 1e-7
	var sum float64
	for i, p := range probs {
		clamped := math.Min(math.Max(float64(p), eps), 1-eps)
		y := float64(labels[i])
		sum += -(y*math.Log(clamped) + (1-y)*math.Log(1-clamped))
	}
	mean := float32(sum / float64(len(probs)))

	lossRaw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32)
	if err != nil {
		panic(err)
	}
	lossRaw.AsFloat32()[0] = mean

	return tensor.New[float32, B](lossRaw, backend)
}

// BinaryAccuracy computes the fraction of predictions whose thresholded
// class matches the target.
//
// Predictions are probabilities in [0, 1]; a prediction counts as class 1
// when it is >= 0.5. Targets are 0 or 1.
//
// Returns a value in [0, 1].
func BinaryAccuracy[B tensor.Backend](predictions, targets *tensor.Tensor[float32, B]) float64 {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("BinaryAccuracy: shape mismatch: predictions %v vs targets %v",
			predictions.Shape(), targets.Shape()))
	}

	predData := predictions.Raw().AsFloat32()
	targetData := targets.Raw().AsFloat32()
	if len(predData) == 0 {
		return 0
	}

	correct := 0
	for i, p := range predData {
		predicted := float32(0)
		if p >= 0.5 {
			predicted = 1
		}
		if predicted == targetData[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(predData))
}
