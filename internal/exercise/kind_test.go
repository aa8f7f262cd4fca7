package exercise

import (
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"swap", Swap},
		{"SUMN", SumN},
		{"factorial", Factorial},
		{" halve ", Halve},
		{"even-odd", EvenOdd},
		{"checkPrime", Prime},
		{"checkPalindrome", Palindrome},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if err != nil {
			t.Errorf("ParseKind(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseKind(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestParseKind_Unknown(t *testing.T) {
	if _, err := ParseKind("fibonacci"); err == nil {
		t.Error("Expected error for unknown exercise, got nil")
	}
}

func TestNameToKind_CoversAllKinds(t *testing.T) {
	for _, k := range Kinds {
		if NameToKind[string(k)] != k {
			t.Errorf("Canonical name %q does not map to itself", k)
		}
	}
}

func TestArgCount(t *testing.T) {
	if ArgCount(Swap) != 2 {
		t.Errorf("Expected swap to take 2 arguments, got %d", ArgCount(Swap))
	}
	for _, k := range Kinds {
		if k != Swap && ArgCount(k) != 1 {
			t.Errorf("Expected %s to take 1 argument, got %d", k, ArgCount(k))
		}
	}
}

func TestValidKindsText(t *testing.T) {
	text := ValidKindsText()
	for _, k := range Kinds {
		if !strings.Contains(text, string(k)) {
			t.Errorf("ValidKindsText() missing %s: %s", k, text)
		}
	}
}
