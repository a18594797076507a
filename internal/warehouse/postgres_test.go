package warehouse

import "testing"

func TestLikePattern(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"lactate", "%lactate%"},
		{"Lactate", "%lactate%"},
		{"pH", "%ph%"},
		{"", "%%"},
	}
	for _, tc := range cases {
		if got := likePattern(tc.in); got != tc.want {
			t.Errorf("likePattern(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
