package ops

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// scalarOf converts a float64 constant to the Go type matching dtype, for
// use with the backend's scalar operations.
func scalarOf(dtype tensor.DataType, v float64) any {
	switch dtype {
	case tensor.Float32:
		return float32(v)
	case tensor.Float64:
		return v
	default:
		panic(fmt.Sprintf("scalarOf: unsupported dtype %s", dtype))
	}
}

// zerosRaw allocates a zero-filled tensor, panicking on invalid shapes.
func zerosRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	t, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("ops: failed to create tensor: %v", err))
	}
	return t
}

// reshapeRaw copies t's data into a tensor of newShape.
// Element counts must match.
func reshapeRaw(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes %v -> %v", t.Shape(), newShape))
	}
	result := zerosRaw(newShape, t.DType(), t.Device())
	copy(result.Data(), t.Data())
	return result
}

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is the backward counterpart of broadcasting in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	// Clone when shapes match already, to avoid aliasing shared gradients
	if grad.Shape().Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// Broadcasting aligns shapes from the right: extra leading dimensions
	// are summed away first, then dimensions where the target is 1.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	for i := 0; i < len(targetShape); i++ {
		if targetShape[i] == 1 && result.Shape()[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = reshapeRaw(result, targetShape)
	}

	return result
}

// scatterAddFlat accumulates src[i] into dst at flat offsets[i].
// Repeated offsets accumulate, making this the exact adjoint of a gather.
func scatterAddFlat(dst, src *tensor.RawTensor, offsets []int) {
	switch dst.DType() {
	case tensor.Float32:
		d := dst.AsFloat32()
		s := src.AsFloat32()
		for i, off := range offsets {
			d[off] += s[i]
		}
	case tensor.Float64:
		d := dst.AsFloat64()
		s := src.AsFloat64()
		for i, off := range offsets {
			d[off] += s[i]
		}
	default:
		panic(fmt.Sprintf("scatterAddFlat: unsupported dtype %s", dst.DType()))
	}
}
