package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// SquareOp represents element-wise squaring: y = x^2.
type SquareOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSquareOp creates a squaring operation.
func NewSquareOp(input, output *tensor.RawTensor) *SquareOp {
	return &SquareOp{input: input, output: output}
}

// Backward computes the gradient: d(x^2)/dx = 2x, so grad_x = 2 * x * grad.
func (op *SquareOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	defer op.input.ForceNonUnique()()

	grad := backend.Mul(outputGrad, op.input)
	grad = backend.MulScalar(grad, scalarOf(grad.DType(), 2))

	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensors.
func (op *SquareOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SquareOp) Output() *tensor.RawTensor {
	return op.output
}
