package tensor

// Backend defines the interface that all compute backends must implement.
// It is the array abstraction the differentiable operators are written
// against: elementwise arithmetic with broadcasting, scalar variants,
// square/sqrt, reductions, broadcast expansion, and flat-offset gather.
//
// Implementations:
//   - CPU: pure Go kernels (internal/backend/cpu)
//   - Autodiff: decorator recording operations on a gradient tape
//     (internal/autodiff)
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise)
	Square(x *RawTensor) *RawTensor // x * x
	Sqrt(x *RawTensor) *RawTensor   // square root

	// Reduction operations
	Sum(x *RawTensor) *RawTensor                           // total sum (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension

	// Shape operations (broadcast)
	Expand(x *RawTensor, shape Shape) *RawTensor // broadcast to shape

	// Indexing operations
	Take(x *RawTensor, offsets []int) *RawTensor // gather elements at flat row-major offsets

	// Metadata
	Name() string
	Device() Device
}
