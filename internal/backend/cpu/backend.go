// Package cpu implements the pure-Go CPU backend for the verdict pipeline.
package cpu

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, addVectorizedFloat32, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, subVectorizedFloat32, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, mulVectorizedFloat32, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b, divVectorizedFloat32, func(x, y float32) float32 { return x / y })
}

// binaryOp implements the shared structure of the element-wise binary
// operations: broadcast-shape resolution, an inplace fast path when the
// left operand's buffer has no other references, a vectorized path for
// same-shape operands, and a strided slow path when broadcasting is needed.
func (cpu *CPUBackend) binaryOp(
	name string,
	a, b *tensor.RawTensor,
	vectorized func(dst, a, b []float32),
	scalar func(x, y float32) float32,
) *tensor.RawTensor {
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtypes %s, %s (only float32 supported)", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		// Inplace into a. The kernels are index-wise, so dst may alias a.
		if a.IsUnique() {
			data := a.AsFloat32()
			vectorized(data, data, b.AsFloat32())
			return a
		}

		result, err := tensor.NewRaw(outShape, tensor.Float32)
		if err != nil {
			panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
		}
		vectorized(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		return result
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	applyBroadcastFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
		a.Shape(), b.Shape(), outShape, scalar)
	return result
}
