package ops

import (
	"math"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// DefaultEps is the default stabilization constant added to the norm.
const DefaultEps float32 = 1e-5

// maskedScatterer is implemented by backends that record masked scatter
// on their tape, so the backward pass stays differentiable.
type maskedScatterer interface {
	MaskedScatter(values *tensor.RawTensor, shape tensor.Shape, offsets []int) *tensor.RawTensor
}

// NormalizeL2Op represents axis-wise L2 normalization:
//
//	y = x / (||x||_2 + eps)
//
// where the norm is computed along a single axis with the reduced
// dimension kept as size 1 for broadcasting.
//
// The backward pass recomputes the norm without eps and divides only at
// positions where it is nonzero, scattering the quotients back into a
// zero-filled tensor. Slices that are entirely zero therefore contribute
// no division by zero: their gradient degenerates to grad_y / eps.
type NormalizeL2Op struct {
	input    *tensor.RawTensor // identity in the graph, keyed by pointer
	retained *tensor.RawTensor // keeps the input buffer alive until backward
	output   *tensor.RawTensor
	eps      float32
	axis     int
}

// NewNormalizeL2Op creates an L2 normalization operation. The axis must
// already be normalized to [0, ndim). The input is retained until the
// backward pass runs or ReleaseRetained is called.
func NewNormalizeL2Op(input, output *tensor.RawTensor, eps float32, axis int) *NormalizeL2Op {
	return &NormalizeL2Op{
		input:    input,
		retained: input.Clone(),
		output:   output,
		eps:      eps,
		axis:     axis,
	}
}

// CheckL2NormalizeInputs validates inputs for L2 normalization and returns
// the normalized axis. Exactly one float32 input is accepted, and the axis
// must be a valid dimension of it (negative axes count from the end).
func CheckL2NormalizeInputs(inputs []*tensor.RawTensor, axis int) (int, error) {
	if len(inputs) != 1 {
		return 0, NewTypeCheckError("normalize_l2", "expected 1 input, got %d", len(inputs))
	}

	x := inputs[0]
	if x.DType() != tensor.Float32 {
		return 0, NewTypeCheckError("normalize_l2", "expected float32 input, got %s", x.DType())
	}

	ndim := len(x.Shape())
	a := axis
	if a < 0 {
		a += ndim
	}
	if a < 0 || a >= ndim {
		return 0, NewShapeError("normalize_l2", "axis %d out of range for %d-dimensional input", axis, ndim)
	}

	return a, nil
}

// L2NormalizeForward computes x / (||x||_2 + eps) along the given axis.
// The axis must already be normalized and the input must be float32.
func L2NormalizeForward(x *tensor.RawTensor, eps float32, axis int, device tensor.Device) *tensor.RawTensor {
	shape := x.Shape()
	normShape := shape.Clone()
	normShape[axis] = 1

	result := zerosRaw(shape, x.DType(), device)
	norms := zerosRaw(normShape, x.DType(), device)

	src := x.AsFloat32()
	dst := result.AsFloat32()
	n := norms.AsFloat32()

	strides := shape.ComputeStrides()
	normStrides := normShape.ComputeStrides()

	for i, v := range src {
		n[collapsedOffset(i, shape, strides, normStrides, axis)] += v * v
	}
	for j := range n {
		n[j] = float32(math.Sqrt(float64(n[j]))) + eps
	}
	for i, v := range src {
		dst[i] = v / n[collapsedOffset(i, shape, strides, normStrides, axis)]
	}

	return result
}

// Backward computes the exact gradient of L2 normalization:
//
//	norm    = ||x||_2 (no eps), kept along axis
//	reduced = sum(x * grad_y, axis)
//	grad_x  = (grad_y * (norm+eps) - scatter(reduced/norm) * x) / (norm+eps)^2
//
// The division reduced/norm happens only at nonzero-norm positions, gathered
// out and scattered back, so degenerate slices never divide by zero. All
// steps go through the backend, so with a recording backend the gradient
// itself is differentiable. The retained input is released on return.
func (op *NormalizeL2Op) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if op.retained == nil {
		panic("normalize_l2: retained input already released")
	}
	x := op.retained
	defer op.ReleaseRetained()
	defer outputGrad.ForceNonUnique()()

	normNoEps := backend.Sqrt(backend.SumDim(backend.Square(x), op.axis, true))
	defer normNoEps.ForceNonUnique()()

	norm := backend.AddScalar(normNoEps, op.eps)
	normB := backend.Expand(norm, outputGrad.Shape())
	defer normB.ForceNonUnique()()

	reduced := backend.SumDim(backend.Mul(x, outputGrad), op.axis, true)

	offsets := nonzeroOffsets(normNoEps)
	var scattered *tensor.RawTensor
	if len(offsets) == 0 {
		scattered = zerosRaw(normNoEps.Shape(), normNoEps.DType(), normNoEps.Device())
	} else {
		quotients := backend.Div(backend.Take(reduced, offsets), backend.Take(normNoEps, offsets))
		if ms, ok := backend.(maskedScatterer); ok {
			scattered = ms.MaskedScatter(quotients, normNoEps.Shape(), offsets)
		} else {
			scattered = MaskedScatterForward(quotients, normNoEps.Shape(), offsets, x.Device())
		}
	}
	scatteredB := backend.Expand(scattered, outputGrad.Shape())

	numerator := backend.Sub(backend.Mul(outputGrad, normB), backend.Mul(scatteredB, x))
	gradX := backend.Div(numerator, backend.Mul(normB, normB))

	return []*tensor.RawTensor{gradX}
}

// ReleaseRetained drops the reference held on the input buffer. Safe to
// call more than once; used when a graph is discarded without backward.
func (op *NormalizeL2Op) ReleaseRetained() {
	if op.retained != nil {
		op.retained.Release()
		op.retained = nil
	}
}

// Inputs returns the input tensors.
func (op *NormalizeL2Op) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *NormalizeL2Op) Output() *tensor.RawTensor {
	return op.output
}

// nonzeroOffsets returns the flat row-major offsets of t's nonzero elements.
func nonzeroOffsets(t *tensor.RawTensor) []int {
	var offsets []int
	switch t.DType() {
	case tensor.Float32:
		for i, v := range t.AsFloat32() {
			if v != 0 {
				offsets = append(offsets, i)
			}
		}
	case tensor.Float64:
		for i, v := range t.AsFloat64() {
			if v != 0 {
				offsets = append(offsets, i)
			}
		}
	}
	return offsets
}

// collapsedOffset maps a flat index in shape to the flat index in the
// reduced shape where dim has size 1.
func collapsedOffset(flat int, shape tensor.Shape, strides, outStrides []int, dim int) int {
	out := 0
	rem := flat
	for d := 0; d < len(shape); d++ {
		coord := rem / strides[d]
		rem %= strides[d]
		if d != dim {
			out += coord * outStrides[d]
		}
	}
	return out
}
