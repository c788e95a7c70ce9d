package textutil

import "testing"

func TestLower(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I", "i"},
		{"already", "already"},
		{"You_Know", "you_know"},
		{"CAFÉ", "café"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Lower(tc.in); got != tc.want {
			t.Errorf("Lower(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLowerAllInPlace(t *testing.T) {
	words := []string{"I", "Mean"}
	LowerAll(words)
	if words[0] != "i" || words[1] != "mean" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestIsPartialWord(t *testing.T) {
	tests := map[string]bool{
		"th-": true,
		"-":   true,
		"the": false,
		"i-":  true,
		"":    false,
	}
	for word, want := range tests {
		if got := IsPartialWord(word); got != want {
			t.Errorf("IsPartialWord(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "a", "b") != "a" || Ternary(false, 1, 2) != 2 {
		t.Fatal("Ternary picked the wrong branch")
	}
}
