package cpu

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// Reshape returns a copy of t with the given shape. The element count must
// be preserved.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.Shape().NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.Shape().NumElements(), newShape, newShape.NumElements()))
	}

	result, err := tensor.NewRaw(newShape.Clone(), t.DType())
	if err != nil {
		panic(fmt.Sprintf("reshape: failed to create result tensor: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		copy(result.AsFloat32(), t.AsFloat32())
	case tensor.Int32:
		copy(result.AsInt32(), t.AsInt32())
	default:
		panic(fmt.Sprintf("reshape: unsupported dtype %s", t.DType()))
	}
	return result
}

// Transpose permutes the dimensions of t. With no axes given the dimension
// order is reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for d := range axes {
			axes[d] = ndim - 1 - d
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for shape %v", axes, shape))
		}
		seen[ax] = true
	}

	outShape := make(tensor.Shape, ndim)
	for d, ax := range axes {
		outShape[d] = shape[ax]
	}

	result, err := tensor.NewRaw(outShape, t.DType())
	if err != nil {
		panic(fmt.Sprintf("transpose: failed to create result tensor: %v", err))
	}

	inStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	n := outShape.NumElements()

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for i := 0; i < n; i++ {
			dst[i] = src[permutedOffset(i, axes, inStrides, outStrides)]
		}
	case tensor.Int32:
		src, dst := t.AsInt32(), result.AsInt32()
		for i := 0; i < n; i++ {
			dst[i] = src[permutedOffset(i, axes, inStrides, outStrides)]
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

func permutedOffset(outIdx int, axes, inStrides, outStrides []int) int {
	rem := outIdx
	inOff := 0
	for d := 0; d < len(axes); d++ {
		idx := rem / outStrides[d]
		rem %= outStrides[d]
		inOff += idx * inStrides[axes[d]]
	}
	return inOff
}
