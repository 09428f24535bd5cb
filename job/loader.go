package job

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrInvalidInterval = errors.New("job ends before it starts")
	ErrInvalidIncome   = errors.New("job income is not a finite number")
)

// Instance is a named job list, optionally with its known optimum income.
// Jobs may be given inline or in a text file referenced by Path.
type Instance struct {
	Name    string         `json:"name"`
	Optimum *float64       `json:"optimum,omitempty"`
	Path    string         `json:"path,omitempty"`
	Jobs    []Job[float64] `json:"jobs"`
}

func LoadInstances(r io.Reader) ([]*Instance, error) {
	var instances []*Instance
	if err := json.NewDecoder(r).Decode(&instances); err != nil {
		return nil, fmt.Errorf("decode instances: %w", err)
	}
	for _, instance := range instances {
		if err := Validate(instance.Jobs); err != nil {
			return nil, fmt.Errorf("instance %q: %w", instance.Name, err)
		}
	}
	return instances, nil
}

// LoadInstanceFile reads a JSON instance list and resolves each instance's
// Path relative to the directory of the list.
func LoadInstanceFile(path string) ([]*Instance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	instances, err := LoadInstances(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, instance := range instances {
		if instance.Path == "" {
			continue
		}
		jobs, err := ReadJobsFile(filepath.Join(dir, instance.Path))
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", instance.Name, err)
		}
		instance.Jobs = append(instance.Jobs, jobs...)
	}
	return instances, nil
}

// ReadJobs parses one job per line as "income start end [name...]".
// Blank lines and lines starting with '#' are skipped. Unnamed jobs are
// called JobN, N being the 1-based position in the list.
func ReadJobs(r io.Reader) ([]Job[float64], error) {
	var jobs []Job[float64]
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if len(text) <= 0 || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected income, start and end, got %q", line, text)
		}
		var values [3]float64
		for i := range values {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			values[i] = v
		}
		name := strings.Join(fields[3:], " ")
		if name == "" {
			name = "Job" + strconv.Itoa(len(jobs)+1)
		}
		j := New(values[0], values[1], values[2], name)
		if err := validate(j); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		jobs = append(jobs, j)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func ReadJobsFile(path string) ([]Job[float64], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	jobs, err := ReadJobs(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, nil
}

// Validate checks what the solver assumes but never verifies: finite incomes
// and End >= Start.
func Validate(jobs []Job[float64]) error {
	for i, j := range jobs {
		if err := validate(j); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, j.Name, err)
		}
	}
	return nil
}

func validate(j Job[float64]) error {
	if math.IsNaN(j.Income) || math.IsInf(j.Income, 0) {
		return ErrInvalidIncome
	}
	if math.IsNaN(j.Start) || math.IsNaN(j.End) || j.End < j.Start {
		return ErrInvalidInterval
	}
	return nil
}

// LoadRandom generates count jobs starting in [0, horizon) on half-unit
// boundaries, lasting at most maxDuration and paying a whole income in
// [1, maxIncome].
func LoadRandom(count int, horizon, maxDuration, maxIncome float64, rng *rand.Rand) []Job[float64] {
	jobs := make([]Job[float64], count)
	for i := range jobs {
		start := math.Round(rng.Float64()*horizon*2) / 2
		duration := math.Round(rng.Float64()*maxDuration*2) / 2
		income := 1 + math.Floor(rng.Float64()*maxIncome)
		if income > maxIncome {
			income = maxIncome
		}
		jobs[i] = New(income, start, start+duration, "Job"+strconv.Itoa(i+1))
	}
	return jobs
}
