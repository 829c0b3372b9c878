package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// DivOp represents element-wise division: c = a / b.
type DivOp struct {
	a      *tensor.RawTensor
	b      *tensor.RawTensor
	output *tensor.RawTensor
}

// NewDivOp creates a division operation.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, output: output}
}

// Backward computes gradients for division using the quotient rule:
//
//	grad_a = grad / b
//	grad_b = -grad * a / b^2 = -grad * (a/b) / b
//
// The second form reuses the stored output c = a/b.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	defer op.a.ForceNonUnique()()
	defer op.b.ForceNonUnique()()
	defer op.output.ForceNonUnique()()

	gradA := reduceBroadcast(backend.Div(outputGrad, op.b), op.a.Shape(), backend)

	gradB := backend.Mul(outputGrad, op.output)
	gradB = backend.Div(gradB, op.b)
	gradB = backend.MulScalar(gradB, scalarOf(gradB.DType(), -1))
	gradB = reduceBroadcast(gradB, op.b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors.
func (op *DivOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *DivOp) Output() *tensor.RawTensor {
	return op.output
}
