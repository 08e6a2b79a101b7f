package cpu_test

import (
	"testing"

	"github.com/verdict-ml/verdict/internal/backend/cpu"
	"github.com/verdict-ml/verdict/internal/tensor"
)

func makeFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func makeInt32(t *testing.T, data []int32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsInt32(), data)
	return raw
}

func assertFloat32(t *testing.T, got *tensor.RawTensor, want []float32, eps float32) {
	t.Helper()
	data := got.AsFloat32()
	if len(data) != len(want) {
		t.Fatalf("Expected %d elements, got %d", len(want), len(data))
	}
	for i := range want {
		diff := data[i] - want[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > eps {
			t.Errorf("Element %d: expected %f, got %f", i, want[i], data[i])
		}
	}
}

func TestAdd_SameShape(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := makeFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)
	assertFloat32(t, result, []float32{11, 22, 33, 44}, 1e-6)
}

func TestAdd_BroadcastRow(t *testing.T) {
	backend := cpu.New()

	// [2,3] + [1,3] broadcasts the row across the batch
	a := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := makeFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	result := backend.Add(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Expected shape [2 3], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{11, 22, 33, 14, 25, 36}, 1e-6)
}

func TestAdd_BroadcastChannelBias(t *testing.T) {
	backend := cpu.New()

	// [1,2,3] + [1,2,1] adds a per-channel bias
	a := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3})
	b := makeFloat32(t, []float32{10, 100}, tensor.Shape{1, 2, 1})

	result := backend.Add(a, b)
	assertFloat32(t, result, []float32{11, 12, 13, 104, 105, 106}, 1e-6)
}

func TestSubMulDiv(t *testing.T) {
	backend := cpu.New()

	// Same-shape unique operands are consumed by the inplace fast path,
	// so each op gets a fresh left operand.
	b := makeFloat32(t, []float32{2, 4, 5}, tensor.Shape{3})

	a := makeFloat32(t, []float32{6, 8, 10}, tensor.Shape{3})
	assertFloat32(t, backend.Sub(a, b), []float32{4, 4, 5}, 1e-6)

	a = makeFloat32(t, []float32{6, 8, 10}, tensor.Shape{3})
	assertFloat32(t, backend.Mul(a, b), []float32{12, 32, 50}, 1e-6)

	a = makeFloat32(t, []float32{6, 8, 10}, tensor.Shape{3})
	assertFloat32(t, backend.Div(a, b), []float32{3, 2, 2}, 1e-6)
}

func TestAdd_InplaceWhenUnique(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := makeFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)
	if result != a {
		t.Error("Expected uniquely referenced left operand to be reused")
	}
	assertFloat32(t, a, []float32{11, 22, 33, 44}, 1e-6)
}

func TestAdd_NoInplaceWhenShared(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := makeFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	restore := a.ForceNonUnique()
	defer restore()

	result := backend.Add(a, b)
	if result == a {
		t.Error("Expected fresh result tensor for shared left operand")
	}
	assertFloat32(t, result, []float32{11, 22, 33, 44}, 1e-6)
	assertFloat32(t, a, []float32{1, 2, 3, 4}, 1e-6)
}

func TestAdd_NoInplaceWhenBroadcast(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3}, tensor.Shape{1, 3})
	b := makeFloat32(t, []float32{10, 20, 30, 40, 50, 60}, tensor.Shape{2, 3})

	result := backend.Add(a, b)
	if result == a {
		t.Error("Expected fresh result tensor when broadcasting")
	}
	assertFloat32(t, result, []float32{11, 22, 33, 41, 52, 63}, 1e-6)
	assertFloat32(t, a, []float32{1, 2, 3}, 1e-6)
}

func TestMatMul(t *testing.T) {
	backend := cpu.New()

	// [2,3] @ [3,2]
	a := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := makeFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	result := backend.MatMul(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("Expected shape [2 2], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{58, 64, 139, 154}, 1e-5)
}

func TestMatMul_ShapeMismatch(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for incompatible matmul shapes")
		}
	}()
	backend.MatMul(a, b)
}

func TestReshape(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	result := backend.Reshape(a, tensor.Shape{3, 2})

	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Expected shape [3 2], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{1, 2, 3, 4, 5, 6}, 1e-6)
}

func TestTranspose_2D(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	result := backend.Transpose(a)

	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Expected shape [3 2], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{1, 4, 2, 5, 3, 6}, 1e-6)
}

func TestTranspose_ChannelsFirst(t *testing.T) {
	backend := cpu.New()

	// [1,2,3] with axes (0,2,1) -> [1,3,2]
	a := makeFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3})
	result := backend.Transpose(a, 0, 2, 1)

	if !result.Shape().Equal(tensor.Shape{1, 3, 2}) {
		t.Fatalf("Expected shape [1 3 2], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{1, 4, 2, 5, 3, 6}, 1e-6)
}

func TestTranspose_Int32(t *testing.T) {
	backend := cpu.New()

	a := makeInt32(t, []int32{1, 2, 3, 4}, tensor.Shape{2, 2})
	result := backend.Transpose(a)

	got := result.AsInt32()
	want := []int32{1, 3, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Element %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestSum(t *testing.T) {
	backend := cpu.New()

	a := makeFloat32(t, []float32{1.5, 2.5, 3, 4}, tensor.Shape{2, 2})
	result := backend.Sum(a)

	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("Expected shape [1], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{11}, 1e-6)
}

func TestConv1D_NoPadding(t *testing.T) {
	backend := cpu.New()

	// Input [1,1,5], kernel [1,1,3], stride 1, no padding -> [1,1,3]
	input := makeFloat32(t, []float32{1, 2, 3, 4, 5}, tensor.Shape{1, 1, 5})
	kernel := makeFloat32(t, []float32{1, 0, -1}, tensor.Shape{1, 1, 3})

	result := backend.Conv1D(input, kernel, 1, 0)
	if !result.Shape().Equal(tensor.Shape{1, 1, 3}) {
		t.Fatalf("Expected shape [1 1 3], got %v", result.Shape())
	}
	// Each window: left - right = -2
	assertFloat32(t, result, []float32{-2, -2, -2}, 1e-6)
}

func TestConv1D_SamePadding(t *testing.T) {
	backend := cpu.New()

	// Padding 1 with kernel 3 preserves the sequence length
	input := makeFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 4})
	kernel := makeFloat32(t, []float32{1, 1, 1}, tensor.Shape{1, 1, 3})

	result := backend.Conv1D(input, kernel, 1, 1)
	if !result.Shape().Equal(tensor.Shape{1, 1, 4}) {
		t.Fatalf("Expected shape [1 1 4], got %v", result.Shape())
	}
	// Sliding sums with zero padding at both ends
	assertFloat32(t, result, []float32{3, 6, 9, 7}, 1e-6)
}

func TestConv1D_MultiChannel(t *testing.T) {
	backend := cpu.New()

	// Input [1,2,3], kernel [1,2,2]: sums over both channels
	input := makeFloat32(t, []float32{
		1, 2, 3, // channel 0
		4, 5, 6, // channel 1
	}, tensor.Shape{1, 2, 3})
	kernel := makeFloat32(t, []float32{
		1, 1, // channel 0 taps
		1, 1, // channel 1 taps
	}, tensor.Shape{1, 2, 2})

	result := backend.Conv1D(input, kernel, 1, 0)
	if !result.Shape().Equal(tensor.Shape{1, 1, 2}) {
		t.Fatalf("Expected shape [1 1 2], got %v", result.Shape())
	}
	// t=0: 1+2+4+5=12, t=1: 2+3+5+6=16
	assertFloat32(t, result, []float32{12, 16}, 1e-6)
}

func TestConv1D_Backward(t *testing.T) {
	backend := cpu.New()

	input := makeFloat32(t, []float32{1, 2, 3}, tensor.Shape{1, 1, 3})
	kernel := makeFloat32(t, []float32{2, 1}, tensor.Shape{1, 1, 2})
	outputGrad := makeFloat32(t, []float32{1, 1}, tensor.Shape{1, 1, 2})

	// gradIn[p] = sum over windows covering p of grad * weight
	gradIn := backend.Conv1DInputBackward(input, kernel, outputGrad, 1, 0)
	assertFloat32(t, gradIn, []float32{2, 3, 1}, 1e-6)

	// gradW[k] = sum over windows of grad * input
	gradW := backend.Conv1DKernelBackward(input, kernel, outputGrad, 1, 0)
	assertFloat32(t, gradW, []float32{3, 5}, 1e-6)
}

func TestMaxPool1D(t *testing.T) {
	backend := cpu.New()

	input := makeFloat32(t, []float32{1, 3, 2, 5, 4, 0}, tensor.Shape{1, 1, 6})
	result := backend.MaxPool1D(input, 2, 2)

	if !result.Shape().Equal(tensor.Shape{1, 1, 3}) {
		t.Fatalf("Expected shape [1 1 3], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{3, 5, 4}, 1e-6)
}

func TestMaxPool1D_MultiChannel(t *testing.T) {
	backend := cpu.New()

	input := makeFloat32(t, []float32{
		1, 2, 3, 4, // channel 0
		8, 7, 6, 5, // channel 1
	}, tensor.Shape{1, 2, 4})
	result := backend.MaxPool1D(input, 2, 2)

	if !result.Shape().Equal(tensor.Shape{1, 2, 2}) {
		t.Fatalf("Expected shape [1 2 2], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{2, 4, 8, 6}, 1e-6)
}

func TestEmbedding_Gather(t *testing.T) {
	backend := cpu.New()

	weight := makeFloat32(t, []float32{
		0, 0, // row 0
		1, 2, // row 1
		3, 4, // row 2
	}, tensor.Shape{3, 2})
	indices := makeInt32(t, []int32{2, 0, 1}, tensor.Shape{1, 3})

	result := backend.Embedding(weight, indices)
	if !result.Shape().Equal(tensor.Shape{1, 3, 2}) {
		t.Fatalf("Expected shape [1 3 2], got %v", result.Shape())
	}
	assertFloat32(t, result, []float32{3, 4, 0, 0, 1, 2}, 1e-6)
}

func TestEmbedding_OutOfBounds(t *testing.T) {
	backend := cpu.New()

	weight := makeFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	indices := makeInt32(t, []int32{5}, tensor.Shape{1})

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for out of bounds embedding index")
		}
	}()
	backend.Embedding(weight, indices)
}

func TestName(t *testing.T) {
	if cpu.New().Name() != "CPU" {
		t.Errorf("Expected backend name CPU, got %s", cpu.New().Name())
	}
}
