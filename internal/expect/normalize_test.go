package expect

import "testing"

func TestNormalizeType(t *testing.T) {
	type test struct {
		name string
		in   string
		want string
	}
	testingFunc := func(tt test) func(t *testing.T) {
		return func(t *testing.T) {
			got := NormalizeType(tt.in)
			if got != tt.want {
				t.Fatalf("%q was expected for %q, got %q", tt.want, tt.in, got)
			}
			if again := NormalizeType(got); again != got {
				t.Fatalf("normalization must be idempotent, %q became %q", got, again)
			}
		}
	}

	tests := []test{
		{
			name: "plain",
			in:   "int",
			want: "int",
		},
		{
			name: "union-reorder",
			in:   "string | int",
			want: "int | string",
		},
		{
			name: "union-already-sorted",
			in:   "int | string",
			want: "int | string",
		},
		{
			name: "intersection-reorder",
			in:   "B & A",
			want: "A & B",
		},
		{
			name: "parenthesized-member",
			in:   "(B & A) | C",
			want: "(A & B) | C",
		},
		{
			name: "nested-union-in-parens",
			in:   "(B | A) | C",
			want: "(A | B) | C",
		},
		{
			name: "no-top-level-separators",
			in:   "map[string]int",
			want: "map[string]int",
		},
		{
			name: "adjacent-paren-groups",
			in:   "(B) & (A)",
			want: "(A) & (B)",
		},
		{
			name: "adjacent-paren-groups-in-union",
			in:   "C | (B) & (A)",
			want: "(A) & (B) | C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, testingFunc(tt))
	}
}

func TestNormalizeTypeCommutes(t *testing.T) {
	pairs := [][2]string{
		{"B | A", "A | B"},
		{"(A & B) | C", "C | (B & A)"},
		{"A & B | C", "C | B & A"},
		{"(A) & (B)", "(B) & (A)"},
	}
	for _, pair := range pairs {
		left := NormalizeType(pair[0])
		right := NormalizeType(pair[1])
		if left != right {
			t.Fatalf("%q and %q must normalize equally, got %q vs %q", pair[0], pair[1], left, right)
		}
	}
}
