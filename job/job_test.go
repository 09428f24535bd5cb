package job

import "testing"

func TestOverlapsWith(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Job[float64]
		overlaps  bool
		conflicts bool
	}{
		{"disjoint", New(1.0, 1, 2, ""), New(1.0, 3, 4, ""), false, false},
		{"shared endpoint", New(1.0, 1, 3, ""), New(1.0, 3, 6, ""), true, true},
		{"start inside", New(1.0, 4, 7, ""), New(1.0, 3, 6, ""), true, true},
		{"end inside", New(1.0, 2, 4, ""), New(1.0, 3, 6, ""), true, true},
		{"contained", New(1.0, 3, 5, ""), New(1.0, 1, 10, ""), true, true},
		{"containing", New(1.0, 1, 10, ""), New(1.0, 3, 5, ""), false, true},
		{"identical", New(1.0, 2, 3, ""), New(1.0, 2, 3, ""), true, true},
		{"point", New(1.0, 5, 5, ""), New(1.0, 4, 6, ""), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.OverlapsWith(tt.b); got != tt.overlaps {
				t.Errorf("OverlapsWith = %v, want %v", got, tt.overlaps)
			}
			if got := Conflicts(tt.a, tt.b); got != tt.conflicts {
				t.Errorf("Conflicts = %v, want %v", got, tt.conflicts)
			}
			if Conflicts(tt.a, tt.b) != Conflicts(tt.b, tt.a) {
				t.Errorf("Conflicts is not symmetric")
			}
		})
	}
}

func TestIntegerJobs(t *testing.T) {
	a := New(10, 0, 4, "a")
	b := New(20, 4, 9, "b")
	if !Conflicts(a, b) {
		t.Fatalf("expected %v and %v to conflict", a, b)
	}
	if b.Duration() != 5 {
		t.Fatalf("Duration = %d, want 5", b.Duration())
	}
}

func TestString(t *testing.T) {
	if got := New(50.0, 1, 3, "Programmer").String(); got != "Programmer : 50    1-3" {
		t.Errorf("got %q", got)
	}
	if got := New(44.0, 5, 5.5, "Job6").String(); got != "Job6 : 44    5-5.5" {
		t.Errorf("got %q", got)
	}
}
