package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// TakeOp represents a flat gather: y[i] = x[offsets[i]].
type TakeOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	offsets []int
}

// NewTakeOp creates a gather operation over flat row-major offsets.
func NewTakeOp(input, output *tensor.RawTensor, offsets []int) *TakeOp {
	return &TakeOp{input: input, output: output, offsets: offsets}
}

// Backward scatter-adds the gradient back to the gathered positions.
// Positions that were not gathered receive zero gradient.
func (op *TakeOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := zerosRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	scatterAddFlat(grad, outputGrad, op.offsets)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensors.
func (op *TakeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *TakeOp) Output() *tensor.RawTensor {
	return op.output
}
