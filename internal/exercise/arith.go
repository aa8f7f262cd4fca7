package exercise

import "strconv"

// SwapInts returns a and b exchanged.
func SwapInts(a, b int) (int, int) {
	return b, a
}

// MaxSumN is the largest n for which Sum(n) fits in an int
const MaxSumN = 1<<(strconv.IntSize/2) - 1

// Sum returns 1+2+...+n, or 0 when n < 1. The result wraps for n > MaxSumN.
func Sum(n int) int {
	if n < 1 {
		return 0
	}
	// Halve whichever factor is even so n*(n+1) is never formed
	if n%2 == 0 {
		return (n / 2) * (n + 1)
	}
	return n * ((n + 1) / 2)
}

// Fact returns n! as an iterative product. Values of n below 1 give the
// empty product, 1. The result wraps for n > MaxFactorial.
func Fact(n int) int {
	f := 1
	for i := 1; i <= n; i++ {
		f *= i
	}
	return f
}

// MaxFactorial is the largest n whose factorial fits in an int:
// 20 with 64-bit ints, 12 with 32-bit ones.
const MaxFactorial = 12 + 8*(strconv.IntSize/64)

// HalvingThreshold is the value at or below which halving stops
const HalvingThreshold = 5

// Halvings returns every value of n seen while it stays above
// HalvingThreshold, halving with integer division after each one.
func Halvings(n int) []int {
	var seen []int
	for n > HalvingThreshold {
		seen = append(seen, n)
		n /= 2
	}
	return seen
}
