package autodiff_test

import (
	"math"
	"testing"

	"github.com/vecnorm-ml/vecnorm/internal/autodiff"
	"github.com/vecnorm-ml/vecnorm/internal/backend/cpu"
	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// l2NormalizeRef normalizes rows of a rows x cols matrix in float64,
// mirroring the operator definition y = x / (||x||_2 + eps).
func l2NormalizeRef(data []float64, rows, cols int, eps float64) []float64 {
	out := make([]float64, len(data))
	for r := 0; r < rows; r++ {
		var sumSq float64
		for c := 0; c < cols; c++ {
			v := data[r*cols+c]
			sumSq += v * v
		}
		norm := math.Sqrt(sumSq) + eps
		for c := 0; c < cols; c++ {
			out[r*cols+c] = data[r*cols+c] / norm
		}
	}
	return out
}

// weightedLossRef computes sum(normalize(x) * w) in float64.
func weightedLossRef(data, weights []float64, rows, cols int, eps float64) float64 {
	y := l2NormalizeRef(data, rows, cols, eps)
	var loss float64
	for i := range y {
		loss += y[i] * weights[i]
	}
	return loss
}

// TestGradientCheck_L2Normalize compares the analytic gradient of
// sum(normalize(x) * w) against central finite differences computed on a
// float64 reference.
func TestGradientCheck_L2Normalize(t *testing.T) {
	const (
		rows = 3
		cols = 4
		eps  = float32(1e-5)
		h    = 1e-6
	)

	xData := []float32{
		0.5, -1.2, 2.0, 0.3,
		1.5, 0.7, -0.4, 2.2,
		-2.1, 0.9, 1.1, -0.6,
	}
	wData := []float32{
		1.0, -0.5, 0.25, 2.0,
		-1.5, 0.75, 1.25, -0.25,
		0.5, 1.0, -1.0, 1.5,
	}

	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice(xData, tensor.Shape{rows, cols}, backend)
	if err != nil {
		t.Fatal(err)
	}
	w, err := tensor.FromSlice(wData, tensor.Shape{rows, cols}, backend)
	if err != nil {
		t.Fatal(err)
	}

	y, err := backend.L2Normalize(x.Raw(), eps, 1)
	if err != nil {
		t.Fatal(err)
	}
	loss := backend.Sum(backend.Mul(y, w.Raw()))

	grads := backend.Backward(loss)
	analytic := grads[x.Raw()].AsFloat32()

	// Finite differences on the float64 reference
	xRef := make([]float64, len(xData))
	wRef := make([]float64, len(wData))
	for i := range xData {
		xRef[i] = float64(xData[i])
		wRef[i] = float64(wData[i])
	}

	for i := range xRef {
		orig := xRef[i]

		xRef[i] = orig + h
		plus := weightedLossRef(xRef, wRef, rows, cols, float64(eps))
		xRef[i] = orig - h
		minus := weightedLossRef(xRef, wRef, rows, cols, float64(eps))
		xRef[i] = orig

		numeric := (plus - minus) / (2 * h)
		if math.Abs(float64(analytic[i])-numeric) > 1e-4 {
			t.Errorf("element %d: analytic gradient %v differs from numeric %v", i, analytic[i], numeric)
		}
	}
}

// TestGradientCheck_NormalizedSum checks d sum(normalize(x)) / dx for a
// single row against finite differences.
func TestGradientCheck_NormalizedSum(t *testing.T) {
	const (
		eps = float32(1e-5)
		h   = 1e-6
	)

	xData := []float32{3, 4}
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice(xData, tensor.Shape{1, 2}, backend)
	if err != nil {
		t.Fatal(err)
	}

	y, err := backend.L2Normalize(x.Raw(), eps, 1)
	if err != nil {
		t.Fatal(err)
	}
	loss := backend.Sum(y)

	grads := backend.Backward(loss)
	analytic := grads[x.Raw()].AsFloat32()

	xRef := []float64{3, 4}
	ones := []float64{1, 1}
	for i := range xRef {
		orig := xRef[i]

		xRef[i] = orig + h
		plus := weightedLossRef(xRef, ones, 1, 2, float64(eps))
		xRef[i] = orig - h
		minus := weightedLossRef(xRef, ones, 1, 2, float64(eps))
		xRef[i] = orig

		numeric := (plus - minus) / (2 * h)
		if math.Abs(float64(analytic[i])-numeric) > 1e-4 {
			t.Errorf("element %d: analytic gradient %v differs from numeric %v", i, analytic[i], numeric)
		}
	}
}
