package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// SubOp represents element-wise subtraction: c = a - b.
type SubOp struct {
	a      *tensor.RawTensor
	b      *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSubOp creates a subtraction operation.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, output: output}
}

// Backward computes gradients for subtraction.
// The gradient flows unchanged to a and negated to b.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()

	gradA := reduceBroadcast(outputGrad, op.a.Shape(), backend)

	gradB := reduceBroadcast(outputGrad, op.b.Shape(), backend)
	gradB = backend.MulScalar(gradB, scalarOf(gradB.DType(), -1))

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors.
func (op *SubOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *SubOp) Output() *tensor.RawTensor {
	return op.output
}
