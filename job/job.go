package job

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Job is a candidate closed interval [Start, End] worth Income when selected.
type Job[T Number] struct {
	Name   string `json:"name"`
	Income T      `json:"income"`
	Start  T      `json:"start"`
	End    T      `json:"end"`
}

func New[T Number](income, start, end T, name string) Job[T] {
	return Job[T]{Name: name, Income: income, Start: start, End: end}
}

func (j Job[T]) Duration() T {
	return j.End - j.Start
}

// OverlapsWith reports whether either endpoint of j falls inside other.
// It is not symmetric: a job strictly containing other is not reported.
func (j Job[T]) OverlapsWith(other Job[T]) bool {
	return (j.Start >= other.Start && j.Start <= other.End) ||
		(j.End >= other.Start && j.End <= other.End)
}

// Conflicts is the symmetric closure of OverlapsWith. Two jobs that conflict
// can never be selected together.
func Conflicts[T Number](a, b Job[T]) bool {
	return a.OverlapsWith(b) || b.OverlapsWith(a)
}

func (j Job[T]) String() string {
	return fmt.Sprintf("%s : %v    %v-%v", j.Name, j.Income, j.Start, j.End)
}
