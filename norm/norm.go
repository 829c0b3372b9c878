// Copyright 2025 VecNorm ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package norm provides differentiable normalization functions.
//
// The flagship function is L2, which scales slices of a tensor to unit
// Euclidean length along an axis. With an autodiff backend the operation
// is recorded for exact gradient computation, including at zero-norm
// slices where naive formulations divide by zero.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	x, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
//	y, err := norm.L2(x, 1e-5, 1)
package norm

import (
	"github.com/vecnorm-ml/vecnorm/internal/autodiff/ops"
	"github.com/vecnorm-ml/vecnorm/internal/norm"
	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// DefaultEps is the default stabilization constant added to the norm.
const DefaultEps = norm.DefaultEps

// DefaultAxis is the default normalization axis.
const DefaultAxis = norm.DefaultAxis

// TypeCheckError reports an input failing the operation's type contract.
type TypeCheckError = ops.TypeCheckError

// ShapeError reports an invalid shape or axis.
type ShapeError = ops.ShapeError

// L2 normalizes x to unit L2 norm along axis: y = x / (||x||_2 + eps).
//
// Returns a TypeCheckError for non-float32 inputs and a ShapeError for an
// axis out of range. Negative axes count from the last dimension.
func L2[B tensor.Backend](x *tensor.Tensor[float32, B], eps float32, axis int) (*tensor.Tensor[float32, B], error) {
	return norm.L2(x, eps, axis)
}

// Normalize applies L2 with the default eps (1e-5) and axis (1).
func Normalize[B tensor.Backend](x *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	return norm.Normalize(x)
}
