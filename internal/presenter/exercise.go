package presenter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mrled/suns/drills/internal/exercise"
)

// SwapLines renders the values after an exchange, one per line
func SwapLines(a, b int) []string {
	return []string{
		fmt.Sprintf("a: %d", a),
		fmt.Sprintf("b: %d", b),
	}
}

// SumLines renders the sum of the first n natural numbers
func SumLines(sum int) []string {
	return []string{fmt.Sprintf("The sum is: %d", sum)}
}

// FactorialLines renders a factorial result
func FactorialLines(f int) []string {
	return []string{fmt.Sprintf("The factorial is: %d", f)}
}

// HalvingLines renders each value seen while halving
func HalvingLines(values []int) []string {
	lines := make([]string, 0, len(values))
	for _, v := range values {
		lines = append(lines, strconv.Itoa(v))
	}
	return lines
}

// ParityLines renders an even/odd classification
func ParityLines(p exercise.Parity) []string {
	return []string{fmt.Sprintf("Number is %s", p)}
}

// PrimeLines renders a primality verdict
func PrimeLines(prime bool) []string {
	if prime {
		return []string{"Number is prime"}
	}
	return []string{"Number is not prime"}
}

// PalindromeLines renders a palindrome verdict
func PalindromeLines(palindrome bool) []string {
	return []string{strconv.FormatBool(palindrome)}
}

// WriteLines writes each line followed by a newline
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
