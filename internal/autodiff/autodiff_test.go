package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecnorm-ml/vecnorm/internal/autodiff"
	"github.com/vecnorm-ml/vecnorm/internal/backend/cpu"
	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

func TestAutodiffBackend_RecordsOperations(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	y := backend.Mul(x.Raw(), x.Raw())
	backend.AddScalar(y, float32(1))

	assert.Len(t, backend.Tape().Operations(), 2)
}

func TestAutodiffBackend_StopRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	backend.Tape().StopRecording()
	backend.Mul(x.Raw(), x.Raw())
	assert.Empty(t, backend.Tape().Operations())

	backend.Tape().ResumeRecording()
	backend.Mul(x.Raw(), x.Raw())
	assert.Len(t, backend.Tape().Operations(), 1)
}

func TestBackward_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	y := backend.Mul(x.Raw(), x.Raw())
	grads := backend.Backward(y)

	// d(x^2)/dx = 2x = 6
	require.Contains(t, grads, x.Raw())
	assert.InDelta(t, 6.0, grads[x.Raw()].AsFloat32()[0], 1e-5)
}

func TestBackward_AccumulatesSharedInput(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{5}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	// y = x + x, gradient accumulates to 2
	y := backend.Add(x.Raw(), x.Raw())
	grads := backend.Backward(y)

	assert.InDelta(t, 2.0, grads[x.Raw()].AsFloat32()[0], 1e-5)
}

func TestBackward_Chain(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{2, 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	// loss = sum((x^2 + 1) * 3), d/dx = 6x
	y := backend.Square(x.Raw())
	y = backend.AddScalar(y, float32(1))
	y = backend.MulScalar(y, float32(3))
	loss := backend.Sum(y)

	grads := backend.Backward(loss)
	data := grads[x.Raw()].AsFloat32()
	assert.InDelta(t, 12.0, data[0], 1e-4)
	assert.InDelta(t, 18.0, data[1], 1e-4)
}

func TestBackward_SumDimExpand(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	// Each row sum feeds back a gradient of 1 per element
	sums := backend.SumDim(x.Raw(), 1, true)
	spread := backend.Expand(sums, tensor.Shape{2, 2})
	loss := backend.Sum(spread)

	grads := backend.Backward(loss)
	for _, v := range grads[x.Raw()].AsFloat32() {
		assert.InDelta(t, 2.0, v, 1e-5, "each element appears in both expanded columns")
	}
}

func TestBackward_InputsPreserved(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	backend.Mul(x.Raw(), y.Raw())

	// Recording must keep inputs intact for the backward pass
	assert.Equal(t, []float32{1, 2}, x.Data())
	assert.Equal(t, []float32{3, 4}, y.Data())
}

func TestL2Normalize_RecordsAndDifferentiates(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3, 4, 0, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	y, err := backend.L2Normalize(x.Raw(), 1e-5, 1)
	require.NoError(t, err)
	loss := backend.Sum(y)

	grads := backend.Backward(loss)
	data := grads[x.Raw()].AsFloat32()

	assert.InDelta(t, 0.032, data[0], 1e-4)
	assert.InDelta(t, -0.024, data[1], 1e-4)
	assert.InEpsilon(t, 1e5, data[2], 1e-3)
	assert.InEpsilon(t, 1e5, data[3], 1e-3)
}

func TestL2Normalize_TypeAndShapeErrors(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x64, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	_, err = backend.L2Normalize(x64, 1e-5, 1)
	assert.Error(t, err)

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	_, err = backend.L2Normalize(x.Raw(), 1e-5, 3)
	assert.Error(t, err)
	assert.Empty(t, backend.Tape().Operations(), "failed calls are not recorded")
}

func TestTapeDispose_ReleasesRetainedInputs(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	_, err = backend.L2Normalize(x.Raw(), 1e-5, 1)
	require.NoError(t, err)
	assert.False(t, x.Raw().IsUnique(), "input retained while graph is alive")

	backend.Tape().Dispose()
	assert.True(t, x.Raw().IsUnique(), "dispose releases retained inputs")
	assert.Empty(t, backend.Tape().Operations())
}

func TestBackward_ReleasesRetainedInputs(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	y, err := backend.L2Normalize(x.Raw(), 1e-5, 1)
	require.NoError(t, err)

	backend.Backward(y)
	assert.True(t, x.Raw().IsUnique(), "backward releases retained inputs")
}

func TestMaskedScatter_Differentiable(t *testing.T) {
	backend := autodiff.New(cpu.New())

	values, err := tensor.FromSlice([]float32{2, 5}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	scattered := backend.MaskedScatter(values.Raw(), tensor.Shape{4}, []int{1, 3})
	assert.Equal(t, []float32{0, 2, 0, 5}, scattered.AsFloat32())

	loss := backend.Sum(scattered)
	grads := backend.Backward(loss)

	assert.Equal(t, []float32{1, 1}, grads[values.Raw()].AsFloat32())
}
