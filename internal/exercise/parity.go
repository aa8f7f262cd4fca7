package exercise

// Parity is the even/odd classification of an integer
type Parity string

const (
	Even Parity = "even"
	Odd  Parity = "odd"
)

// ParityOf classifies n. Negative odd numbers are odd.
func ParityOf(n int) Parity {
	if n%2 == 0 {
		return Even
	}
	return Odd
}
