package nn_test

import (
	"math"
	"testing"

	"github.com/verdict-ml/verdict/internal/autodiff"
	"github.com/verdict-ml/verdict/internal/backend/cpu"
	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/tensor"
)

func TestBCELoss_Forward(t *testing.T) {
	backend := autodiff.New(cpu.New())

	bce := nn.NewBCELoss[adBackend]()

	probs, _ := tensor.FromSlice([]float32{0.9, 0.1}, tensor.Shape{2, 1}, backend)
	targets, _ := tensor.FromSlice([]float32{1, 0}, tensor.Shape{2, 1}, backend)

	loss := bce.Forward(probs, targets)

	// -[ln(0.9) + ln(0.9)] / 2 = -ln(0.9)
	want := float32(-math.Log(0.9))
	got := loss.Item()
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("Expected loss %f, got %f", want, got)
	}
}

func TestBCELoss_ShapeMismatch(t *testing.T) {
	backend := autodiff.New(cpu.New())

	bce := nn.NewBCELoss[adBackend]()

	probs := tensor.Zeros[float32](tensor.Shape{2, 1}, backend)
	targets := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for shape mismatch")
		}
	}()
	bce.Forward(probs, targets)
}

func TestBCELoss_ManualFallback(t *testing.T) {
	backend := cpu.New()

	bce := nn.NewBCELoss[*cpu.CPUBackend]()
	probs, _ := tensor.FromSlice([]float32{0.9, 0.1}, tensor.Shape{2, 1}, backend)
	targets, _ := tensor.FromSlice([]float32{1, 0}, tensor.Shape{2, 1}, backend)

	loss := bce.Forward(probs, targets)

	want := float32(-math.Log(0.9))
	got := loss.Item()
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("Expected loss %f, got %f", want, got)
	}
}

func TestBinaryAccuracy(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name     string
		probs    []float32
		targets  []float32
		expected float64
	}{
		{"all correct", []float32{0.9, 0.1, 0.8, 0.2}, []float32{1, 0, 1, 0}, 1.0},
		{"all wrong", []float32{0.9, 0.1}, []float32{0, 1}, 0.0},
		{"half right", []float32{0.9, 0.9}, []float32{1, 0}, 0.5},
		{"threshold at one half", []float32{0.5}, []float32{1}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.probs)
			probs, _ := tensor.FromSlice(tt.probs, tensor.Shape{n, 1}, backend)
			targets, _ := tensor.FromSlice(tt.targets, tensor.Shape{n, 1}, backend)

			got := nn.BinaryAccuracy(probs, targets)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected accuracy %f, got %f", tt.expected, got)
			}
		})
	}
}
