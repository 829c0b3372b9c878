package cpu

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// Expand broadcasts x to newShape without reducing any dimension.
// Each input dimension must equal the target dimension or be 1.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()

	if len(newShape) < len(xShape) {
		panic(fmt.Sprintf("expand: new shape %v has fewer dimensions than input shape %v",
			newShape, xShape))
	}

	// Align shapes from the right
	offset := len(newShape) - len(xShape)
	for i := 0; i < len(xShape); i++ {
		xDim := xShape[i]
		newDim := newShape[offset+i]
		if xDim != 1 && xDim != newDim {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d",
				i, xDim, newDim))
		}
	}

	result := newResult("expand", newShape, x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		expandBroadcast(result.AsFloat32(), x.AsFloat32(), xShape, newShape)
	case tensor.Float64:
		expandBroadcast(result.AsFloat64(), x.AsFloat64(), xShape, newShape)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %s", x.DType()))
	}

	return result
}

func expandBroadcast[T number](dst, src []T, srcShape, outShape tensor.Shape) {
	// Scalar source: every output element is src[0]
	if len(srcShape) == 0 {
		for i := range dst {
			dst[i] = src[0]
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	srcStrides := srcShape.ComputeStrides()
	numElements := outShape.NumElements()

	for i := 0; i < numElements; i++ {
		srcIdx := broadcastOffset(i, outShape, outStrides, srcShape, srcStrides)
		dst[i] = src[srcIdx]
	}
}
