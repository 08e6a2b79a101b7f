package cpu

import (
	"github.com/verdict-ml/verdict/internal/tensor"
)

func addVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divVectorizedFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

// applyBroadcastFloat32 evaluates op over the broadcasted output shape.
// Broadcast dimensions of either input contribute a zero stride so the
// same element is re-read for every position along that dimension.
func applyBroadcastFloat32(dst, a, b []float32, aShape, bShape, outShape tensor.Shape, op func(x, y float32) float32) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		rem := i
		aOff, bOff := 0, 0
		for d := 0; d < len(outShape); d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			aOff += idx * aStrides[d]
			bOff += idx * bStrides[d]
		}
		dst[i] = op(a[aOff], b[bOff])
	}
}

// broadcastStrides right-aligns inShape against outShape and returns the
// per-output-dimension strides into the input, with 0 for broadcast dims.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	inStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)
	for d := range outShape {
		if d < offset || inShape[d-offset] == 1 {
			strides[d] = 0
		} else {
			strides[d] = inStrides[d-offset]
		}
	}
	return strides
}
