package allele

import "testing"

func TestEqual(t *testing.T) {
	if !Equal(int64(5), int64(5)) {
		t.Errorf("expected 5 == 5")
	}
	if Equal(int64(5), int64(6)) {
		t.Errorf("expected 5 != 6")
	}
	if Equal("a", int64(1)) {
		t.Errorf("expected mismatched types to compare unequal, not panic")
	}
}

func TestClampInt(t *testing.T) {
	cases := []struct {
		v, min, max, want int64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.min, c.max); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.v, c.min, c.max, got, c.want)
		}
	}
}

func TestClampFloat(t *testing.T) {
	if got := Clamp(3.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp(3.5, 0, 1) = %v, want 1.0", got)
	}
	if got := Clamp(-0.5, 0.0, 1.0); got != 0.0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %v, want 0.0", got)
	}
}
