package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// SqrtOp represents element-wise square root: y = sqrt(x).
type SqrtOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSqrtOp creates a square root operation.
func NewSqrtOp(input, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{input: input, output: output}
}

// Backward computes the gradient: d(sqrt(x))/dx = 1/(2*sqrt(x)), so
// grad_x = grad / (2 * y) using the stored output.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	defer op.output.ForceNonUnique()()

	grad := backend.Div(outputGrad, op.output)
	grad = backend.MulScalar(grad, scalarOf(grad.DType(), 0.5))

	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensors.
func (op *SqrtOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SqrtOp) Output() *tensor.RawTensor {
	return op.output
}
