package dsp

// FFTShift swaps the left and right halves of x, splitting at
// floor((len(x)+1)/2). For even length this rotation is its own inverse;
// for odd length the split point is asymmetric, so FFTShift alone is not
// an involution there. IFFTShift always undoes it, for any length.
func FFTShift(x []complex128) []complex128 {
	n := len(x)
	mid := (n + 1) / 2
	return rotate(x, mid)
}

// IFFTShift inverts FFTShift for any length, splitting at
// floor(len(x)/2): IFFTShift(FFTShift(x)) == x always, odd or even.
func IFFTShift(x []complex128) []complex128 {
	n := len(x)
	mid := n / 2
	return rotate(x, mid)
}

func rotate(x []complex128, mid int) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	copy(out, x[mid:])
	copy(out[n-mid:], x[:mid])
	return out
}
