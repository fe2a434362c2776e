// Package rvv carries the vector workload kernels of the test harness in
// portable form: add, memcpy, dot product, saxpy and matmul. On hardware
// these run strip-mined over the vector unit; here they are the numerically
// identical reference loops, used by the driver as single-thread workloads
// with self-checked results.
package rvv

// Element is the set of lane types the kernels operate on.
type Element interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// VecAdd computes dst[i] = a[i] + b[i] over len(dst) lanes.
// a and b must be at least as long as dst.
func VecAdd[T Element](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// Memcpy copies src into dst and returns the number of bytes copied,
// which is min(len(dst), len(src)).
func Memcpy(dst, src []byte) int {
	return copy(dst, src)
}

// DotProduct returns the sum over a[i]*b[i]. b must be at least as long
// as a.
func DotProduct[T Element](a, b []T) T {
	var acc T
	for i := range a {
		acc += a[i] * b[i]
	}
	return acc
}

// Saxpy computes y[i] += a * x[i] over len(y) lanes. x must be at least as
// long as y.
func Saxpy(a float32, x, y []float32) {
	for i := range y {
		y[i] += a * x[i]
	}
}
