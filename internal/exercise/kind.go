package exercise

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies one of the exercises
type Kind string

const (
	Swap       Kind = "swap"
	SumN       Kind = "sumn"
	Factorial  Kind = "fact"
	Halve      Kind = "divide"
	EvenOdd    Kind = "evenodd"
	Prime      Kind = "prime"
	Palindrome Kind = "palindrome"
)

// Kinds lists every exercise in the order the driver declares them
var Kinds = []Kind{Swap, SumN, Factorial, Halve, EvenOdd, Prime, Palindrome}

// NameToKind maps accepted names, including aliases, to their canonical kind
var NameToKind = map[string]Kind{
	"swap":            Swap,
	"sumn":            SumN,
	"sum":             SumN,
	"fact":            Factorial,
	"factorial":       Factorial,
	"divide":          Halve,
	"halve":           Halve,
	"evenodd":         EvenOdd,
	"even-odd":        EvenOdd,
	"parity":          EvenOdd,
	"prime":           Prime,
	"checkprime":      Prime,
	"palindrome":      Palindrome,
	"checkpalindrome": Palindrome,
}

// ParseKind resolves a user-supplied exercise name (case-insensitive)
func ParseKind(name string) (Kind, error) {
	kind, ok := NameToKind[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown exercise %q", name)
	}
	return kind, nil
}

// ArgCount returns how many arguments an exercise takes
func ArgCount(kind Kind) int {
	if kind == Swap {
		return 2
	}
	return 1
}

// TakesText reports whether the exercise argument is free text rather than an integer
func TakesText(kind Kind) bool {
	return kind == Palindrome
}

// ValidKindsText lists the canonical exercise names for help and error text
func ValidKindsText() string {
	names := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return "Valid exercises: " + strings.Join(names, ", ")
}
