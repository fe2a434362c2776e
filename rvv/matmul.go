package rvv

// Matmul computes C = A * B for row-major float32 matrices, where A is m×k,
// B is k×n and C is m×n. C is zeroed first. The accumulation order matches
// the vectorized firmware kernel (k-dimension outer, columns inner), so
// results are bit-identical to it.
//
// panic via slice bounds if the slices are shorter than the given shape.
func Matmul(c, a, b []float32, m, n, k int) {
	for i := range c[:m*n] {
		c[i] = 0
	}
	for i := 0; i < m; i++ {
		cRow := c[i*n : i*n+n]
		for p := 0; p < k; p++ {
			aik := a[i*k+p]
			bRow := b[p*n : p*n+n]
			for j, bv := range bRow {
				cRow[j] += aik * bv
			}
		}
	}
}
