package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// AddOp represents element-wise addition: c = a + b.
type AddOp struct {
	a      *tensor.RawTensor
	b      *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddOp creates an addition operation.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, output: output}
}

// Backward computes gradients for addition.
// Addition distributes gradients equally, reduced over broadcast dimensions.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer outputGrad.ForceNonUnique()()

	gradA := reduceBroadcast(outputGrad, op.a.Shape(), backend)
	gradB := reduceBroadcast(outputGrad, op.b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors.
func (op *AddOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.a, op.b}
}

// Output returns the output tensor.
func (op *AddOp) Output() *tensor.RawTensor {
	return op.output
}
