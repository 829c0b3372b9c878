// Package ops defines operation interfaces and implementations for automatic differentiation.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computed by the backend (or a forward helper in this package)
//   - Backward pass: computes gradients for inputs given the output gradient
//
// The flagship operation is NormalizeL2Op (axis-wise L2 normalization with a
// degenerate-safe exact gradient); MaskedScatterOp and TakeOp provide the
// scatter/gather pair its backward pass is built on. The remaining operations
// are the differentiable primitives that backward pass composes, so that the
// gradient computation is itself differentiable.
package ops

import "github.com/vecnorm-ml/vecnorm/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
