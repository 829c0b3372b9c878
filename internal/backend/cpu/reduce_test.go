package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

func TestSumDim_KeepDim(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.SumDim(x, 1, true)
	assert.Equal(t, tensor.Shape{2, 1}, result.Shape())
	assert.Equal(t, []float32{6, 15}, result.AsFloat32())
}

func TestSumDim_DropDim(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.SumDim(x, 0, false)
	assert.Equal(t, tensor.Shape{3}, result.Shape())
	assert.Equal(t, []float32{5, 7, 9}, result.AsFloat32())
}

func TestSumDim_NegativeDim(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.SumDim(x, -1, true)
	assert.Equal(t, tensor.Shape{2, 1}, result.Shape())
	assert.Equal(t, []float32{3, 7}, result.AsFloat32())
}

func TestSumDim_OutOfRangePanics(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	assert.Panics(t, func() { backend.SumDim(x, 1, true) })
}

func TestSum_Scalar(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Sum(x)
	assert.Equal(t, tensor.Shape{}, result.Shape())
	assert.Equal(t, float32(10), result.AsFloat32()[0])
}

func TestExpand_KeptDim(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{10, 20}, tensor.Shape{2, 1})

	result := backend.Expand(x, tensor.Shape{2, 3})
	assert.Equal(t, []float32{10, 10, 10, 20, 20, 20}, result.AsFloat32())
}

func TestExpand_Scalar(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{7}, tensor.Shape{})

	result := backend.Expand(x, tensor.Shape{2, 2})
	assert.Equal(t, []float32{7, 7, 7, 7}, result.AsFloat32())
}

func TestExpand_IncompatiblePanics(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	assert.Panics(t, func() { backend.Expand(x, tensor.Shape{3}) })
}

func TestTake(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Take(x, []int{3, 0, 3})
	assert.Equal(t, tensor.Shape{3}, result.Shape())
	assert.Equal(t, []float32{40, 10, 40}, result.AsFloat32())
}

func TestTake_Invalid(t *testing.T) {
	backend := New()
	x := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	assert.Panics(t, func() { backend.Take(x, nil) })
	assert.Panics(t, func() { backend.Take(x, []int{2}) })
}
