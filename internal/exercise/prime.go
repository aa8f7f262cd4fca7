package exercise

// MaxPrimeCandidate is the largest n the runner will test for primality.
// Trial division up to n/2 stays under a second below it.
const MaxPrimeCandidate = 100_000_000

// IsPrime reports whether n is prime by trial division with every
// candidate from 2 up to n/2. Anything below 2 is not prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i <= n/2; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
