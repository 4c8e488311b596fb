package fec

import "fmt"

// RS(255,223): 223 data bytes, 32 parity bytes, corrects up to 16 byte
// errors per codeword at unknown positions.
const (
	CodewordSize = 255
	DataSize     = 223
	ParitySize   = CodewordSize - DataSize // 32
	MaxErrors    = ParitySize / 2           // 16
)

// rsGeneratorPoly returns the degree-nsym generator polynomial
// g(x) = product_{i=0}^{nsym-1} (x - alpha^i), big-endian coefficients.
func rsGeneratorPoly(nsym int) []byte {
	g := []byte{1}
	for i := 0; i < nsym; i++ {
		g = gfPolyMul(g, []byte{1, gfPow(2, i)})
	}
	return g
}

// generator is built in init rather than as a package-level initializer,
// which would run before gf256.go's init fills the GF(256) tables.
var generator []byte

func init() {
	generator = rsGeneratorPoly(ParitySize)
}

// EncodeCodeword takes exactly DataSize bytes and returns a CodewordSize
// systematic RS codeword: the data bytes unchanged, followed by ParitySize
// parity bytes computed via polynomial long division by the generator.
func EncodeCodeword(data []byte) ([]byte, error) {
	if len(data) != DataSize {
		return nil, fmt.Errorf("fec: EncodeCodeword needs exactly %d bytes, got %d", DataSize, len(data))
	}

	remainder := make([]byte, ParitySize)
	for _, b := range data {
		factor := b ^ remainder[0]
		copy(remainder, remainder[1:])
		remainder[len(remainder)-1] = 0
		if factor != 0 {
			for i := 0; i < len(generator)-1; i++ {
				remainder[i] ^= gfMul(generator[i+1], factor)
			}
		}
	}

	out := make([]byte, CodewordSize)
	copy(out, data)
	copy(out[DataSize:], remainder)
	return out, nil
}

// DecodeCodeword takes a CodewordSize received codeword, corrects up to
// MaxErrors byte errors at unknown positions, and returns the DataSize
// data bytes. Returns an error if the codeword carries more errors than
// can be corrected.
func DecodeCodeword(received []byte) ([]byte, error) {
	if len(received) != CodewordSize {
		return nil, fmt.Errorf("fec: DecodeCodeword needs exactly %d bytes, got %d", CodewordSize, len(received))
	}

	synd := calcSyndromes(received, ParitySize)
	if allZero(synd) {
		out := make([]byte, DataSize)
		copy(out, received[:DataSize])
		return out, nil
	}

	errLoc, err := findErrorLocator(synd, ParitySize)
	if err != nil {
		return nil, err
	}

	errPos, err := findErrorPositions(errLoc, len(received))
	if err != nil {
		return nil, err
	}

	corrected, err := correctErrors(received, synd, errPos)
	if err != nil {
		return nil, err
	}

	// Re-verify: a wrong correction still leaves nonzero syndromes.
	if !allZero(calcSyndromes(corrected, ParitySize)) {
		return nil, fmt.Errorf("%w: residual syndrome nonzero after correction", ErrCorruptedCodeword)
	}

	out := make([]byte, DataSize)
	copy(out, corrected[:DataSize])
	return out, nil
}

func calcSyndromes(msg []byte, nsym int) []byte {
	synd := make([]byte, nsym)
	for i := 0; i < nsym; i++ {
		synd[i] = gfPolyEval(msg, gfPow(2, i))
	}
	return synd
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func gfPolyScale(p []byte, x byte) []byte {
	out := make([]byte, len(p))
	for i, c := range p {
		out[i] = gfMul(c, x)
	}
	return out
}

func gfPolyAddXor(p, q []byte) []byte {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]byte, n)
	copy(out[n-len(p):], p)
	for i, c := range q {
		out[i+n-len(q)] ^= c
	}
	return out
}

// findErrorLocator runs Berlekamp-Massey over the syndromes to find the
// error-locator polynomial (big-endian), assuming no known erasures.
func findErrorLocator(synd []byte, nsym int) ([]byte, error) {
	errLoc := []byte{1}
	oldLoc := []byte{1}

	for i := 0; i < nsym; i++ {
		delta := synd[i]
		for j := 1; j < len(errLoc); j++ {
			delta ^= gfMul(errLoc[len(errLoc)-1-j], synd[i-j])
		}
		oldLoc = append(oldLoc, 0)
		if delta != 0 {
			if len(oldLoc) > len(errLoc) {
				newLoc := gfPolyScale(oldLoc, delta)
				oldLoc = gfPolyScale(errLoc, gfInverse(delta))
				errLoc = newLoc
			}
			errLoc = gfPolyAddXor(errLoc, gfPolyScale(oldLoc, delta))
		}
	}

	// Trim leading zero coefficients.
	start := 0
	for start < len(errLoc)-1 && errLoc[start] == 0 {
		start++
	}
	errLoc = errLoc[start:]

	errs := len(errLoc) - 1
	if errs*2 > nsym {
		return nil, fmt.Errorf("%w: too many errors to correct", ErrCorruptedCodeword)
	}
	return errLoc, nil
}

// findErrorPositions runs a Chien search for the roots of the error
// locator polynomial, returning byte offsets from the start of a
// codeword of the given length.
func findErrorPositions(errLoc []byte, codewordLen int) ([]int, error) {
	errs := len(errLoc) - 1
	var positions []int
	for i := 0; i < 255; i++ {
		if gfPolyEval(errLoc, gfPow(2, i)) == 0 {
			d := (255 - i) % 255
			positions = append(positions, codewordLen-1-d)
		}
	}
	if len(positions) != errs {
		return nil, fmt.Errorf("%w: error locator roots do not match error count", ErrCorruptedCodeword)
	}
	return positions, nil
}

// correctErrors applies the Forney algorithm to compute error magnitudes
// at the given byte positions and XORs them into a copy of msg.
func correctErrors(msg []byte, synd []byte, errPos []int) ([]byte, error) {
	coefPos := make([]int, len(errPos))
	for i, p := range errPos {
		coefPos[i] = len(msg) - 1 - p
	}

	errLoc := errataLocator(coefPos)
	// The trailing zero makes the reversed syndromes the polynomial
	// sum S_i x^(i+1), the form the Forney step below expects.
	errEval := errorEvaluator(append(reverse(synd), 0), errLoc, len(errLoc)-1)
	errEval = reverse(errEval)

	xs := make([]byte, len(coefPos))
	for i, cp := range coefPos {
		xs[i] = gfPow(2, cp)
	}

	out := make([]byte, len(msg))
	copy(out, msg)

	for i, xi := range xs {
		xiInv := gfInverse(xi)

		var denom byte = 1
		for j, xj := range xs {
			if j == i {
				continue
			}
			denom = gfMul(denom, (1 ^ gfMul(xiInv, xj)))
		}

		y := gfPolyEval(reverse(errEval), xiInv)
		y = gfMul(xi, y)

		magnitude := gfDiv(y, denom)
		out[errPos[i]] ^= magnitude
	}

	return out, nil
}

// errataLocator builds the error locator polynomial directly from known
// error coefficient positions: product(1 - X_i * x).
func errataLocator(coefPos []int) []byte {
	loc := []byte{1}
	for _, cp := range coefPos {
		xi := gfPow(2, cp)
		loc = gfPolyMul(loc, []byte{gfMul(xi, 1), 1})
	}
	return loc
}

// errorEvaluator computes Omega(x) = (Syndrome(x) * ErrLoc(x)) mod x^(nsym+1).
func errorEvaluator(synd, errLoc []byte, nsym int) []byte {
	prod := gfPolyMul(synd, errLoc)
	if len(prod) > nsym+1 {
		prod = prod[len(prod)-(nsym+1):]
	}
	return prod
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
