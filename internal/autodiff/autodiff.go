package autodiff

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/autodiff/ops"
	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// AutodiffBackend wraps a tensor backend and records every executed
// operation on a gradient tape. It implements tensor.Backend itself, so
// code written against the interface is differentiated transparently.
//
// Arguments are marked non-unique for the duration of each call so the
// inner backend never reuses a buffer that the tape still references.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff backend wrapping the given inner backend.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape.
func (a *AutodiffBackend[B]) Tape() *GradientTape {
	return a.tape
}

// Inner returns the wrapped backend.
func (a *AutodiffBackend[B]) Inner() B {
	return a.inner
}

// Name returns the backend name.
func (a *AutodiffBackend[B]) Name() string {
	return fmt.Sprintf("autodiff(%s)", a.inner.Name())
}

// Device returns the device of the wrapped backend.
func (a *AutodiffBackend[B]) Device() tensor.Device {
	return a.inner.Device()
}

// Add performs element-wise addition and records it.
func (a *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	output := a.inner.Add(x, y)
	a.tape.Record(ops.NewAddOp(x, y, output))
	return output
}

// Sub performs element-wise subtraction and records it.
func (a *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	output := a.inner.Sub(x, y)
	a.tape.Record(ops.NewSubOp(x, y, output))
	return output
}

// Mul performs element-wise multiplication and records it.
func (a *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	output := a.inner.Mul(x, y)
	a.tape.Record(ops.NewMulOp(x, y, output))
	return output
}

// Div performs element-wise division and records it.
func (a *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	output := a.inner.Div(x, y)
	a.tape.Record(ops.NewDivOp(x, y, output))
	return output
}

// AddScalar adds a scalar constant and records it.
func (a *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.AddScalar(x, scalar)
	a.tape.Record(ops.NewAddScalarOp(x, output))
	return output
}

// SubScalar subtracts a scalar constant and records it.
func (a *AutodiffBackend[B]) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.SubScalar(x, scalar)
	a.tape.Record(ops.NewSubScalarOp(x, output))
	return output
}

// MulScalar multiplies by a scalar constant and records it.
func (a *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.MulScalar(x, scalar)
	a.tape.Record(ops.NewMulScalarOp(x, output, scalar))
	return output
}

// DivScalar divides by a scalar constant and records it.
func (a *AutodiffBackend[B]) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.DivScalar(x, scalar)
	a.tape.Record(ops.NewDivScalarOp(x, output, scalar))
	return output
}

// Square squares element-wise and records it.
func (a *AutodiffBackend[B]) Square(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.Square(x)
	a.tape.Record(ops.NewSquareOp(x, output))
	return output
}

// Sqrt takes the element-wise square root and records it.
func (a *AutodiffBackend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.Sqrt(x)
	a.tape.Record(ops.NewSqrtOp(x, output))
	return output
}

// Sum reduces to a scalar and records it.
func (a *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.Sum(x)
	a.tape.Record(ops.NewSumOp(x, output))
	return output
}

// SumDim sums along a dimension and records it.
func (a *AutodiffBackend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	if dim < 0 {
		dim += len(x.Shape())
	}
	output := a.inner.SumDim(x, dim, keepDim)
	a.tape.Record(ops.NewSumDimOp(x, output, dim, keepDim))
	return output
}

// Expand broadcasts to a larger shape and records it.
func (a *AutodiffBackend[B]) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.Expand(x, shape)
	a.tape.Record(ops.NewExpandOp(x, output))
	return output
}

// Take gathers elements at flat offsets and records it.
func (a *AutodiffBackend[B]) Take(x *tensor.RawTensor, offsets []int) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := a.inner.Take(x, offsets)
	a.tape.Record(ops.NewTakeOp(x, output, offsets))
	return output
}

// MaskedScatter writes values into a zero-filled tensor at flat offsets
// and records it. The forward is computed here rather than delegated,
// since scatter is defined by the offsets alone.
func (a *AutodiffBackend[B]) MaskedScatter(values *tensor.RawTensor, shape tensor.Shape, offsets []int) *tensor.RawTensor {
	defer values.ForceNonUnique()()

	output := ops.MaskedScatterForward(values, shape, offsets, a.inner.Device())
	a.tape.Record(ops.NewMaskedScatterOp(values, output, offsets))
	return output
}

// L2Normalize computes x / (||x||_2 + eps) along axis and records an
// operation whose backward pass handles zero-norm slices exactly. The
// input is retained by the recorded operation until backward runs or the
// tape is disposed.
func (a *AutodiffBackend[B]) L2Normalize(x *tensor.RawTensor, eps float32, axis int) (*tensor.RawTensor, error) {
	normalizedAxis, err := ops.CheckL2NormalizeInputs([]*tensor.RawTensor{x}, axis)
	if err != nil {
		return nil, err
	}

	defer x.ForceNonUnique()()

	output := ops.L2NormalizeForward(x, eps, normalizedAxis, a.inner.Device())
	if a.tape.IsRecording() {
		a.tape.Record(ops.NewNormalizeL2Op(x, output, eps, normalizedAxis))
	}
	return output, nil
}
