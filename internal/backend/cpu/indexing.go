package cpu

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// Take gathers elements at flat row-major offsets into a 1-D tensor of
// length len(offsets). Offsets must be non-empty and in range.
func (cpu *CPUBackend) Take(x *tensor.RawTensor, offsets []int) *tensor.RawTensor {
	if len(offsets) == 0 {
		panic("take: empty offset list")
	}

	numElements := x.NumElements()
	for i, off := range offsets {
		if off < 0 || off >= numElements {
			panic(fmt.Sprintf("take: offset %d at position %d out of range for %d elements", off, i, numElements))
		}
	}

	result := newResult("take", tensor.Shape{len(offsets)}, x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, off := range offsets {
			dst[i] = src[off]
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, off := range offsets {
			dst[i] = src[off]
		}
	default:
		panic(fmt.Sprintf("take: unsupported dtype %s", x.DType()))
	}

	return result
}
