package main

import "C"

import "unsafe"

// unsafeDoubleSlice views a caller-provided C.double* buffer of length n
// as a Go slice, for writing output without a copy.
func unsafeDoubleSlice(p *C.double, n int) []C.double {
	if n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

// copyFloats writes as many of samples as fit in the caller's out buffer
// (length outLen) and returns how many were written.
func copyFloats(samples []float64, out *C.double, outLen C.size_t) C.size_t {
	n := int(outLen)
	if n > len(samples) {
		n = len(samples)
	}
	dst := unsafeDoubleSlice(out, n)
	for i := 0; i < n; i++ {
		dst[i] = C.double(samples[i])
	}
	return C.size_t(n)
}
