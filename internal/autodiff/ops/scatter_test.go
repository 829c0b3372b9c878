package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecnorm-ml/vecnorm/internal/backend/cpu"
	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

func fromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestMaskedScatterForward(t *testing.T) {
	values := fromFloat32(t, []float32{1.5, 2.5}, tensor.Shape{2})

	result := MaskedScatterForward(values, tensor.Shape{2, 2}, []int{0, 3}, tensor.CPU)

	assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assert.Equal(t, []float32{1.5, 0, 0, 2.5}, result.AsFloat32())
}

func TestMaskedScatterForward_BadInputs(t *testing.T) {
	values := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})

	assert.Panics(t, func() {
		MaskedScatterForward(values, tensor.Shape{4}, []int{0}, tensor.CPU)
	}, "offset count must match values")
	assert.Panics(t, func() {
		MaskedScatterForward(values, tensor.Shape{3}, []int{0, 3}, tensor.CPU)
	}, "offset out of range")
}

func TestMaskedScatterOp_BackwardGathers(t *testing.T) {
	backend := cpu.New()
	offsets := []int{1, 2}
	values := fromFloat32(t, []float32{5, 7}, tensor.Shape{2})
	output := MaskedScatterForward(values, tensor.Shape{4}, offsets, tensor.CPU)

	op := NewMaskedScatterOp(values, output, offsets)

	outputGrad := fromFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	grads := op.Backward(outputGrad, backend)

	require.Len(t, grads, 1)
	assert.Equal(t, []float32{20, 30}, grads[0].AsFloat32())
}

func TestTakeOp_BackwardScatterAdds(t *testing.T) {
	backend := cpu.New()
	offsets := []int{0, 2, 2}
	input := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	output := backend.Take(input, offsets)

	op := NewTakeOp(input, output, offsets)

	outputGrad := fromFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})
	grads := op.Backward(outputGrad, backend)

	require.Len(t, grads, 1)
	assert.Equal(t, []float32{10, 0, 50, 0}, grads[0].AsFloat32(), "repeated offsets accumulate")
}

// Scatter then gather at the same offsets returns the values untouched,
// and gather then scatter reproduces only the gathered positions. This
// adjoint relationship is what the normalization backward pass relies on.
func TestScatterGather_Adjoint(t *testing.T) {
	backend := cpu.New()
	offsets := []int{1, 3, 4}
	values := fromFloat32(t, []float32{-1, 2, 0.5}, tensor.Shape{3})

	scattered := MaskedScatterForward(values, tensor.Shape{6}, offsets, tensor.CPU)
	roundTrip := backend.Take(scattered, offsets)

	assert.Equal(t, values.AsFloat32(), roundTrip.AsFloat32())
}
