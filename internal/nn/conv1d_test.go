package nn_test

import (
	"testing"

	"github.com/verdict-ml/verdict/internal/backend/cpu"
	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/tensor"
)

func TestConv1D_Forward_KnownWeights(t *testing.T) {
	backend := cpu.New()

	conv := nn.NewConv1D[*cpu.CPUBackend](1, 1, 3, 1, 1, false, backend)
	copy(conv.Weight().Tensor().Data(), []float32{1, 1, 1})

	input, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 4}, backend)
	output := conv.Forward(input)

	if !shapesEqual(output.Shape(), tensor.Shape{1, 1, 4}) {
		t.Fatalf("Expected same-length output [1 1 4], got %v", output.Shape())
	}
	expected := []float32{3, 6, 9, 7}
	if !slicesAlmostEqual(output.Data(), expected, 1e-5) {
		t.Errorf("Expected %v, got %v", expected, output.Data())
	}
}

func TestConv1D_Forward_WithBias(t *testing.T) {
	backend := cpu.New()

	conv := nn.NewConv1D[*cpu.CPUBackend](1, 2, 2, 1, 0, true, backend)
	copy(conv.Weight().Tensor().Data(), []float32{
		1, 0, // channel 0 kernel
		0, 1, // channel 1 kernel
	})

	params := conv.Parameters()
	if len(params) != 2 {
		t.Fatalf("Expected weight and bias parameters, got %d", len(params))
	}
	copy(params[1].Tensor().Data(), []float32{10, 100})

	input, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 1, 3}, backend)
	output := conv.Forward(input)

	if !shapesEqual(output.Shape(), tensor.Shape{1, 2, 2}) {
		t.Fatalf("Expected shape [1 2 2], got %v", output.Shape())
	}
	// Channel 0 picks the left tap + 10, channel 1 the right tap + 100
	expected := []float32{11, 12, 102, 103}
	if !slicesAlmostEqual(output.Data(), expected, 1e-5) {
		t.Errorf("Expected %v, got %v", expected, output.Data())
	}
}

func TestConv1D_Forward_StrideTwo(t *testing.T) {
	backend := cpu.New()

	conv := nn.NewConv1D[*cpu.CPUBackend](1, 1, 2, 2, 0, false, backend)
	copy(conv.Weight().Tensor().Data(), []float32{1, 1})

	input, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 1, 6}, backend)
	output := conv.Forward(input)

	if !shapesEqual(output.Shape(), tensor.Shape{1, 1, 3}) {
		t.Fatalf("Expected shape [1 1 3], got %v", output.Shape())
	}
	expected := []float32{3, 7, 11}
	if !slicesAlmostEqual(output.Data(), expected, 1e-5) {
		t.Errorf("Expected %v, got %v", expected, output.Data())
	}
}

func TestConv1D_ChannelMismatch(t *testing.T) {
	backend := cpu.New()

	conv := nn.NewConv1D[*cpu.CPUBackend](3, 4, 3, 1, 1, true, backend)
	input := tensor.Zeros[float32](tensor.Shape{1, 2, 8}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for channel mismatch")
		}
	}()
	conv.Forward(input)
}

func TestNewConv1D_InvalidConfig(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for zero kernel size")
		}
	}()
	nn.NewConv1D[*cpu.CPUBackend](1, 1, 0, 1, 0, false, backend)
}
