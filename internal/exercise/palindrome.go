package exercise

// IsPalindrome checks if a string is a palindrome.
// It compares characters from both ends, working towards the middle.
// Works with both ASCII and Unicode characters.
func IsPalindrome(s string) bool {
	// Convert string to rune slice to properly handle Unicode characters
	runes := []rune(s)
	length := len(runes)

	for i := 0; i < length/2; i++ {
		if runes[i] != runes[length-1-i] {
			return false
		}
	}

	return true
}
