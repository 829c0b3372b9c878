package cpu

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// number constrains the element types the CPU kernels operate on.
type number interface {
	~float32 | ~float64
}

// kernel selects the element-wise operation applied by the generic loops.
type kernel int

const (
	addKernel kernel = iota
	subKernel
	mulKernel
	divKernel
)

func apply[T number](k kernel, x, y T) T {
	switch k {
	case addKernel:
		return x + y
	case subKernel:
		return x - y
	case mulKernel:
		return x * y
	case divKernel:
		return x / y
	default:
		panic("unknown kernel")
	}
}

// applyVectorized runs kern over equally-shaped operands into result.
func applyVectorized(result, a, b *tensor.RawTensor, kern kernel) {
	switch a.DType() {
	case tensor.Float32:
		vectorized(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kern)
	case tensor.Float64:
		vectorized(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kern)
	default:
		panic(fmt.Sprintf("kernel: unsupported dtype %s", a.DType()))
	}
}

// applyInplace runs kern over equally-shaped operands, writing into a.
func applyInplace(a, b *tensor.RawTensor, kern kernel) {
	switch a.DType() {
	case tensor.Float32:
		data := a.AsFloat32()
		vectorized(data, data, b.AsFloat32(), kern)
	case tensor.Float64:
		data := a.AsFloat64()
		vectorized(data, data, b.AsFloat64(), kern)
	default:
		panic(fmt.Sprintf("kernel: unsupported dtype %s", a.DType()))
	}
}

func vectorized[T number](dst, a, b []T, kern kernel) {
	for i := range dst {
		dst[i] = apply(kern, a[i], b[i])
	}
}

// applyBroadcast runs kern with NumPy-style broadcasting of a and b to outShape.
func applyBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape, kern kernel) {
	switch a.DType() {
	case tensor.Float32:
		broadcasted(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, kern)
	case tensor.Float64:
		broadcasted(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, kern)
	default:
		panic(fmt.Sprintf("kernel: unsupported dtype %s", a.DType()))
	}
}

func broadcasted[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape, kern kernel) {
	outStrides := outShape.ComputeStrides()
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()
	numElements := outShape.NumElements()

	for i := 0; i < numElements; i++ {
		aIdx := broadcastOffset(i, outShape, outStrides, aShape, aStrides)
		bIdx := broadcastOffset(i, outShape, outStrides, bShape, bStrides)
		dst[i] = apply(kern, a[aIdx], b[bIdx])
	}
}

// broadcastOffset maps a flat output offset to the flat offset in a source
// tensor whose shape broadcasts to the output shape (right-aligned; size-1
// source dimensions always map to coordinate 0).
func broadcastOffset(flat int, outShape tensor.Shape, outStrides []int, srcShape tensor.Shape, srcStrides []int) int {
	srcIdx := 0
	temp := flat
	for d := 0; d < len(outShape); d++ {
		coord := temp / outStrides[d]
		temp %= outStrides[d]

		srcDim := d - (len(outShape) - len(srcShape))
		if srcDim >= 0 && srcDim < len(srcShape) {
			if srcShape[srcDim] == 1 {
				coord = 0
			}
			srcIdx += coord * srcStrides[srcDim]
		}
	}
	return srcIdx
}
