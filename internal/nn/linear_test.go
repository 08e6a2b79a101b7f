package nn_test

import (
	"testing"

	"github.com/verdict-ml/verdict/internal/backend/cpu"
	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/tensor"
)

func TestLinear_Forward_KnownWeights(t *testing.T) {
	backend := cpu.New()

	linear := nn.NewLinear[*cpu.CPUBackend](3, 2, backend)

	// W = [[1,0,1],[0,1,0]], b = [10, 20]
	copy(linear.Weight().Tensor().Data(), []float32{1, 0, 1, 0, 1, 0})
	copy(linear.Bias().Tensor().Data(), []float32{10, 20})

	input, _ := tensor.FromSlice([]float32{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3}, backend)

	output := linear.Forward(input)

	if !shapesEqual(output.Shape(), tensor.Shape{2, 2}) {
		t.Fatalf("Expected shape [2 2], got %v", output.Shape())
	}

	// Row 0: [1+3+10, 2+20] = [14, 22]; row 1: [4+6+10, 5+20] = [20, 25]
	expected := []float32{14, 22, 20, 25}
	if !slicesAlmostEqual(output.Data(), expected, 1e-5) {
		t.Errorf("Expected %v, got %v", expected, output.Data())
	}
}

func TestLinear_Forward_FeatureMismatch(t *testing.T) {
	backend := cpu.New()

	linear := nn.NewLinear[*cpu.CPUBackend](4, 2, backend)
	input := tensor.Zeros[float32](tensor.Shape{1, 3}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for feature count mismatch")
		}
	}()
	linear.Forward(input)
}

func TestLinear_Parameters(t *testing.T) {
	backend := cpu.New()

	linear := nn.NewLinear[*cpu.CPUBackend](8, 4, backend)

	params := linear.Parameters()
	if len(params) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(params))
	}
	if !shapesEqual(params[0].Tensor().Shape(), tensor.Shape{4, 8}) {
		t.Errorf("Expected weight shape [4 8], got %v", params[0].Tensor().Shape())
	}
	if !shapesEqual(params[1].Tensor().Shape(), tensor.Shape{4}) {
		t.Errorf("Expected bias shape [4], got %v", params[1].Tensor().Shape())
	}

	// Bias starts at zero
	for _, v := range params[1].Tensor().Data() {
		if v != 0 {
			t.Errorf("Expected zero-initialized bias, got %f", v)
		}
	}

	if linear.InFeatures() != 8 || linear.OutFeatures() != 4 {
		t.Errorf("Expected 8 in / 4 out, got %d / %d", linear.InFeatures(), linear.OutFeatures())
	}
}
