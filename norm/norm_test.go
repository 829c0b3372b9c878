package norm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecnorm-ml/vecnorm/autodiff"
	"github.com/vecnorm-ml/vecnorm/backend/cpu"
	"github.com/vecnorm-ml/vecnorm/norm"
	"github.com/vecnorm-ml/vecnorm/tensor"
)

func TestNormalize_Defaults(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	y, err := norm.Normalize(x)
	require.NoError(t, err)

	data := y.Data()
	assert.InDelta(t, 0.599999, data[0], 1e-6)
	assert.InDelta(t, 0.799999, data[1], 1e-6)
	assert.Equal(t, x.Shape(), y.Shape())
}

func TestL2_PlainBackend(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{0, 5, 0, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	y, err := norm.L2(x, norm.DefaultEps, 1)
	require.NoError(t, err)

	data := y.Data()
	assert.InDelta(t, 0, data[0], 1e-6)
	assert.InDelta(t, 1, data[1], 1e-4)
	assert.Equal(t, float32(0), data[2], "zero row stays zero")
	assert.Equal(t, float32(0), data[3])
}

func TestL2_NegativeAxis(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	y, err := norm.L2(x, norm.DefaultEps, -1)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, y.Data()[0], 1e-4)
}

func TestL2_Errors(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	_, err = norm.L2(x, norm.DefaultEps, 2)
	var shapeErr *norm.ShapeError
	assert.ErrorAs(t, err, &shapeErr)

	_, err = norm.L2(x, norm.DefaultEps, -2)
	assert.ErrorAs(t, err, &shapeErr)
}

func TestL2_GradientThroughAutodiff(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3, 4, 0, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	y, err := norm.Normalize(x)
	require.NoError(t, err)

	loss := y.Sum()
	grads := backend.Backward(loss.Raw())

	data := grads[x.Raw()].AsFloat32()
	assert.InDelta(t, 0.032, data[0], 1e-4)
	assert.InDelta(t, -0.024, data[1], 1e-4)
	assert.InEpsilon(t, 1e5, data[2], 1e-3, "degenerate slice gradient is gy/eps")
}
