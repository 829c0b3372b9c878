package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// MulOp represents element-wise multiplication: c = a * b.
type MulOp struct {
	a      *tensor.RawTensor
	b      *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMulOp creates a multiplication operation.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{a: a, b: b, output: output}
}

// Backward computes gradients for multiplication using the product rule:
// grad_a = grad * b, grad_b = grad * a, each reduced over broadcast dims.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()
	defer op.a.ForceNonUnique()()
	defer op.b.ForceNonUnique()()

	gradA := reduceBroadcast(backend.Mul(outputGrad, op.b), op.a.Shape(), backend)
	gradB := reduceBroadcast(backend.Mul(outputGrad, op.a), op.b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors.
func (op *MulOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *MulOp) Output() *tensor.RawTensor {
	return op.output
}
