package ops

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// MaskedScatterOp writes a flat vector of values into a zero-filled tensor
// at flat row-major offsets captured when the operation was built:
//
//	y = zeros(shape); y[offsets[i]] = values[i]
//
// The offsets are data, not a differentiable input, so the gradient only
// flows to values. The backward pass is a gather at the same offsets,
// making scatter and gather exact adjoints of each other.
type MaskedScatterOp struct {
	values  *tensor.RawTensor
	output  *tensor.RawTensor
	offsets []int
}

// NewMaskedScatterOp creates a masked scatter operation.
func NewMaskedScatterOp(values, output *tensor.RawTensor, offsets []int) *MaskedScatterOp {
	return &MaskedScatterOp{values: values, output: output, offsets: offsets}
}

// Backward gathers the output gradient at the captured offsets.
func (op *MaskedScatterOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	return []*tensor.RawTensor{backend.Take(outputGrad, op.offsets)}
}

// Inputs returns the input tensors.
func (op *MaskedScatterOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.values}
}

// Output returns the output tensor.
func (op *MaskedScatterOp) Output() *tensor.RawTensor {
	return op.output
}

// MaskedScatterForward scatters values into a zero-filled tensor of the
// given shape. values must be 1-D with one element per offset, and every
// offset must be in range for the destination.
func MaskedScatterForward(values *tensor.RawTensor, shape tensor.Shape, offsets []int, device tensor.Device) *tensor.RawTensor {
	if len(values.Shape()) != 1 || values.NumElements() != len(offsets) {
		panic(fmt.Sprintf("masked_scatter: values shape %v does not match %d offsets",
			values.Shape(), len(offsets)))
	}

	result := zerosRaw(shape, values.DType(), device)
	numElements := result.NumElements()
	for i, off := range offsets {
		if off < 0 || off >= numElements {
			panic(fmt.Sprintf("masked_scatter: offset %d at position %d out of range for %d elements",
				off, i, numElements))
		}
	}

	switch values.DType() {
	case tensor.Float32:
		src := values.AsFloat32()
		dst := result.AsFloat32()
		for i, off := range offsets {
			dst[off] = src[i]
		}
	case tensor.Float64:
		src := values.AsFloat64()
		dst := result.AsFloat64()
		for i, off := range offsets {
			dst[off] = src[i]
		}
	default:
		panic(fmt.Sprintf("masked_scatter: unsupported dtype %s", values.DType()))
	}

	return result
}
