package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// SumDimOp represents summation along a single dimension.
type SumDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a dimension-wise summation operation.
// The dim must already be normalized to [0, ndim).
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{input: input, output: output, dim: dim, keepDim: keepDim}
}

// Backward broadcasts the gradient back along the summed dimension.
// Every input element that contributed to a sum receives that sum's gradient.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()

	grad := outputGrad
	if !op.keepDim {
		// Reinsert the summed dimension as size 1 so Expand lines up.
		keepShape := op.input.Shape().Clone()
		keepShape[op.dim] = 1
		grad = reshapeRaw(grad, keepShape)
	}

	return []*tensor.RawTensor{backend.Expand(grad, op.input.Shape())}
}

// Inputs returns the input tensors.
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}
