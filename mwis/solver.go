// Package mwis selects the most valuable set of mutually compatible jobs by
// solving a maximum-weight independent set over their conflict graph.
package mwis

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"jobincome_go/graph"
	"jobincome_go/job"
)

var (
	ErrBranchLimit        = errors.New("branch limit exceeded")
	ErrDuplicateCandidate = errors.New("duplicate candidate node")
)

type Strategy int

const (
	// Recursive is the branch-and-bound recurrence of SolveComponent.
	Recursive Strategy = iota
	// States is the node-state machine of SolveByStates.
	States
)

func (s Strategy) String() string {
	switch s {
	case Recursive:
		return "recursive"
	case States:
		return "states"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", "recursive":
		return Recursive, nil
	case "states":
		return States, nil
	}
	return Recursive, fmt.Errorf("unknown strategy %q", name)
}

type Options struct {
	// Workers > 1 solves that many components concurrently.
	Workers int
	// MaxBranches > 0 bounds the search-tree nodes visited per component.
	MaxBranches int
	Strategy    Strategy
	Logger      *log.Logger
}

type Solution[T job.Number] struct {
	Jobs []job.Job[T]
	// Nodes holds the input index of each selected job.
	Nodes    []int
	Income   T
	Branches int
}

// newSolution sums the selected incomes in selection order, the same order the
// searches accumulate them in.
func newSolution[T job.Number](jobs []job.Job[T], nodes []int, branches int) Solution[T] {
	solution := Solution[T]{Nodes: nodes, Branches: branches}
	solution.Jobs = make([]job.Job[T], len(nodes))
	for i, node := range nodes {
		solution.Jobs[i] = jobs[node]
		solution.Income += jobs[node].Income
	}
	return solution
}

func checkCandidates[T job.Number](g *graph.Graph, jobs []job.Job[T], candidates []int) error {
	seen := mapset.NewThreadUnsafeSet[int]()
	for _, node := range candidates {
		if !g.HasNode(node) || node < 0 || node >= len(jobs) {
			return fmt.Errorf("candidate %d: %w", node, graph.ErrUnknownNode)
		}
		if !seen.Add(node) {
			return fmt.Errorf("candidate %d: %w", node, ErrDuplicateCandidate)
		}
	}
	return nil
}

type search[T job.Number] struct {
	g        *graph.Graph
	jobs     []job.Job[T]
	limit    int
	branches int
}

// SolveComponent finds a maximum-income independent set of the subgraph of g
// induced by candidates. It branches on the first candidate: either take it
// and drop its neighbors, or skip it. Ties keep the branch that takes it.
func SolveComponent[T job.Number](g *graph.Graph, jobs []job.Job[T], candidates []int, opts Options) (Solution[T], error) {
	if err := checkCandidates(g, jobs, candidates); err != nil {
		return Solution[T]{}, err
	}
	s := search[T]{g: g, jobs: jobs, limit: opts.MaxBranches}
	nodes, _, err := s.solve(candidates, nil, 0)
	if err != nil {
		return Solution[T]{}, err
	}
	return newSolution(jobs, nodes, s.branches), nil
}

// solve carries the nodes taken so far and their running income down the
// tree and returns the best completed selection with its total.
func (s *search[T]) solve(candidates []int, taken []int, income T) ([]int, T, error) {
	s.branches++
	if s.limit > 0 && s.branches > s.limit {
		return nil, 0, fmt.Errorf("%w after %d branches", ErrBranchLimit, s.limit)
	}
	if len(candidates) == 0 {
		return taken, income, nil
	}

	v := candidates[0]
	rest := candidates[1:]
	compatible := make([]int, 0, len(rest))
	for _, c := range rest {
		if !s.g.Adjacent(v, c) {
			compatible = append(compatible, c)
		}
	}

	// clipped so sibling branches never share a backing array
	with, withIncome, err := s.solve(compatible, append(slices.Clip(taken), v), income+s.jobs[v].Income)
	if err != nil {
		return nil, 0, err
	}
	without, withoutIncome, err := s.solve(rest, taken, income)
	if err != nil {
		return nil, 0, err
	}
	if withoutIncome > withIncome {
		return without, withoutIncome, nil
	}
	return with, withIncome, nil
}
