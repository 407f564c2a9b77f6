package reviews

import "testing"

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"three reviews", []int{5, 3, 4}, 4.0},
		{"after removing the 3", []int{5, 4}, 4.5},
		{"single review", []int{2}, 2.0},
		{"empty set", nil, 0},
	}
	for _, c := range cases {
		if got := AverageRating(c.ratings); got != c.want {
			t.Fatalf("%s: AverageRating(%v) = %v, want %v", c.name, c.ratings, got, c.want)
		}
	}
}
