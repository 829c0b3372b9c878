// Package norm provides normalization functions over tensors.
package norm

import (
	"github.com/vecnorm-ml/vecnorm/internal/autodiff/ops"
	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// DefaultEps is the default stabilization constant for L2 normalization.
const DefaultEps = ops.DefaultEps

// DefaultAxis is the default normalization axis. Axis 1 matches the
// common batch layout where rows are feature vectors.
const DefaultAxis = 1

// l2Normalizer is implemented by backends that provide L2 normalization
// natively, recording it for differentiation.
type l2Normalizer interface {
	L2Normalize(x *tensor.RawTensor, eps float32, axis int) (*tensor.RawTensor, error)
}

// L2 normalizes x to unit L2 norm along axis:
//
//	y = x / (||x||_2 + eps)
//
// The reduced dimension is kept with size 1 inside the computation, so
// the output shape equals the input shape. A TypeCheckError is returned
// for non-float32 inputs and a ShapeError for an axis out of range.
//
// With a recording backend the operation lands on the gradient tape;
// otherwise only the forward value is computed.
func L2[B tensor.Backend](x *tensor.Tensor[float32, B], eps float32, axis int) (*tensor.Tensor[float32, B], error) {
	backend := x.Backend()

	if n, ok := any(backend).(l2Normalizer); ok {
		raw, err := n.L2Normalize(x.Raw(), eps, axis)
		if err != nil {
			return nil, err
		}
		return tensor.New[float32](raw, backend), nil
	}

	normalizedAxis, err := ops.CheckL2NormalizeInputs([]*tensor.RawTensor{x.Raw()}, axis)
	if err != nil {
		return nil, err
	}

	raw := ops.L2NormalizeForward(x.Raw(), eps, normalizedAxis, backend.Device())
	return tensor.New[float32](raw, backend), nil
}

// Normalize applies L2 with the default eps and axis.
func Normalize[B tensor.Backend](x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	return L2(x, DefaultEps, DefaultAxis)
}
