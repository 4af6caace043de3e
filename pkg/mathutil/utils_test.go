package mathutil

import "testing"

func TestPowerHeuristicWeightsSumToOne(t *testing.T) {
	cases := [][2]float32{
		{1, 1}, {2, 3}, {0, 5}, {5, 0}, {0.001, 4}, {10, 10},
	}
	for _, c := range cases {
		a, b := c[0], c[1]
		sum := PowerHeuristic(a, b) + PowerHeuristic(b, a)
		if d := sum - 1; d > 1e-5 || d < -1e-5 {
			t.Fatalf("PowerHeuristic(%v,%v)+PowerHeuristic(%v,%v) = %v, want 1", a, b, b, a, sum)
		}
	}
}

func TestPowerHeuristicBothZero(t *testing.T) {
	if w := PowerHeuristic(0, 0); w != 0 {
		t.Fatalf("PowerHeuristic(0,0) = %v, want 0", w)
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(5, 0, 1); v != 1 {
		t.Fatalf("Clamp(5,0,1) = %v, want 1", v)
	}
	if v := Clamp(-5, 0, 1); v != 0 {
		t.Fatalf("Clamp(-5,0,1) = %v, want 0", v)
	}
	if v := Clamp(0.5, 0, 1); v != 0.5 {
		t.Fatalf("Clamp(0.5,0,1) = %v, want 0.5", v)
	}
}
