package quiz

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Paris", want: "paris"},
		{name: "surrounding spaces", in: " paris ", want: "paris"},
		{name: "math delimiters", in: "$4$ ", want: "4"},
		{name: "inner whitespace", in: "New  Delhi", want: "newdelhi"},
		{name: "tabs and newlines", in: "\t42\n", want: "42"},
		{name: "mixed markup", in: "$x^2 + 1$", want: "x^2+1"},
		{name: "empty", in: "", want: ""},
		{name: "only delimiters", in: " $ $ ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"$4$ ", "4"},
		{"Paris", " paris "},
		{"$\\frac{1}{2}$", "\\frac{1}{2}"},
	}
	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("expected %q and %q to normalize equal, got %q vs %q",
				p[0], p[1], Normalize(p[0]), Normalize(p[1]))
		}
	}
}
