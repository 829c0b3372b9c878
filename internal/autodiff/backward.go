package autodiff

import (
	"fmt"

	"github.com/vecnorm-ml/vecnorm/internal/tensor"
)

// Backward walks the tape in reverse from output, accumulating gradients
// for every tensor that participated in producing it. The returned map is
// keyed by raw tensor identity; look up gradients with the same pointers
// that went into the forward pass.
//
// Recording is paused while gradients are computed. To differentiate the
// backward pass itself, record it explicitly on a second tape.
func (a *AutodiffBackend[B]) Backward(output *tensor.RawTensor) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[output] = onesLike(output)

	wasRecording := a.tape.IsRecording()
	a.tape.StopRecording()
	defer func() {
		if wasRecording {
			a.tape.ResumeRecording()
		}
	}()

	operations := a.tape.Operations()
	for i := len(operations) - 1; i >= 0; i-- {
		op := operations[i]

		outputGrad, ok := grads[op.Output()]
		if !ok {
			// Not on any path to the differentiated output.
			if r, ok := op.(retainedReleaser); ok {
				r.ReleaseRetained()
			}
			continue
		}

		inputGrads := op.Backward(outputGrad, a)
		for j, input := range op.Inputs() {
			if existing, ok := grads[input]; ok {
				grads[input] = a.inner.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}

// BackwardCapable is implemented by backends that can compute gradients
// for tensors produced through them.
type BackwardCapable interface {
	tensor.Backend
	Backward(output *tensor.RawTensor) map[*tensor.RawTensor]*tensor.RawTensor
}

// Backward computes gradients of t with respect to everything on the
// backend's tape.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return backend.Backward(t.Raw())
}

// onesLike creates a tensor of ones with t's shape and dtype.
func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: failed to create seed gradient: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		data := result.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := result.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("autodiff: unsupported dtype %s", t.DType()))
	}

	return result
}
