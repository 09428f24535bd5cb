package job

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadInstanceFile(t *testing.T) {
	instances, err := LoadInstanceFile("testdata/instances.json")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]struct {
		jobs    int
		optimum float64
	}{
		"staff":   {4, 120},
		"six":     {6, 140},
		"fifteen": {15, 822},
	}
	if len(instances) != len(want) {
		t.Fatalf("loaded %d instances, want %d", len(instances), len(want))
	}
	for _, instance := range instances {
		w, found := want[instance.Name]
		if !found {
			t.Fatalf("unexpected instance %q", instance.Name)
		}
		if len(instance.Jobs) != w.jobs {
			t.Errorf("%s: %d jobs, want %d", instance.Name, len(instance.Jobs), w.jobs)
		}
		if instance.Optimum == nil || *instance.Optimum != w.optimum {
			t.Errorf("%s: optimum %v, want %v", instance.Name, instance.Optimum, w.optimum)
		}
	}
	if got := instances[2].Jobs[5]; got != New(44.0, 5, 5.5, "Job6") {
		t.Errorf("fifteen job 6 = %v", got)
	}
}

func TestReadJobs(t *testing.T) {
	input := `
# comment
50 1 3 Lead Programmer
60 3 6

70 6 8 Tester
`
	jobs, err := ReadJobs(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []Job[float64]{
		New(50.0, 1, 3, "Lead Programmer"),
		New(60.0, 3, 6, "Job2"),
		New(70.0, 6, 8, "Tester"),
	}
	if diff := cmp.Diff(want, jobs); diff != "" {
		t.Fatalf("ReadJobs mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJobsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"backwards", "10 5 4", ErrInvalidInterval},
		{"infinite", "+Inf 1 2", ErrInvalidIncome},
		{"nan", "NaN 1 2", ErrInvalidIncome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJobs(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := ReadJobs(strings.NewReader("10 5")); err == nil {
		t.Fatal("expected error for short line")
	}
	if _, err := ReadJobs(strings.NewReader("ten 1 2")); err == nil {
		t.Fatal("expected error for bad number")
	}
}

func TestLoadInstancesRejectsInvalidJobs(t *testing.T) {
	input := `[{"name": "bad", "jobs": [{"name": "x", "income": 1, "start": 3, "end": 2}]}]`
	if _, err := LoadInstances(strings.NewReader(input)); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidInterval)
	}
}

func TestLoadRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	jobs := LoadRandom(200, 50, 4, 100, rng)
	if len(jobs) != 200 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	if err := Validate(jobs); err != nil {
		t.Fatal(err)
	}
	for _, j := range jobs {
		if j.Start < 0 || j.Start > 50 || j.Duration() > 4 || j.Income < 1 || j.Income > 100 {
			t.Fatalf("job out of range: %v", j)
		}
		if j.Income != math.Floor(j.Income) {
			t.Fatalf("income not whole: %v", j)
		}
	}
	again := LoadRandom(200, 50, 4, 100, rand.New(rand.NewSource(7)))
	if diff := cmp.Diff(jobs, again); diff != "" {
		t.Fatalf("same seed produced different jobs:\n%s", diff)
	}
}
