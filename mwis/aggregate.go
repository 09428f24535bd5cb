package mwis

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/oleiade/lane/v2"
	"jobincome_go/graph"
	"jobincome_go/job"
)

// SolveAll returns a maximum-income set of pairwise compatible jobs. Selected
// jobs are grouped by conflict component, components in order of their first
// job, and ascending by input index within a component.
func SolveAll[T job.Number](jobs []job.Job[T]) Solution[T] {
	// without a branch limit no component can fail
	solution, _ := Solve(jobs, Options{})
	return solution
}

// Solve is SolveAll with options. Components are independent, so with
// opts.Workers > 1 they are solved concurrently, largest first; the result
// does not depend on the number of workers.
func Solve[T job.Number](jobs []job.Job[T], opts Options) (Solution[T], error) {
	g := BuildConflictGraph(jobs)
	components := g.Components()
	results := make([]Solution[T], len(components))

	solver := SolveComponent[T]
	if opts.Strategy == States {
		solver = SolveByStates[T]
	}
	solveOne := func(c int) error {
		sub, err := g.Subgraph(components[c])
		if err != nil {
			return err
		}
		solution, err := solver(sub, jobs, components[c], opts)
		if err != nil {
			return fmt.Errorf("component %d (%d jobs): %w", c, len(components[c]), err)
		}
		if opts.Logger != nil {
			maxDegree := 0
			for _, node := range components[c] {
				maxDegree = max(maxDegree, sub.Degree(node))
			}
			opts.Logger.Printf("Component %d: %d nodes, %d edges, max degree %d, %d branches, income %v\n",
				c, len(components[c]), sub.Size(), maxDegree, solution.Branches, solution.Income)
		}
		results[c] = solution
		return nil
	}

	var err error
	if opts.Workers > 1 && len(components) > 1 {
		err = solveConcurrently(components, opts.Workers, solveOne)
	} else {
		for c := range components {
			if err = solveOne(c); err != nil {
				break
			}
		}
	}
	if err != nil {
		return Solution[T]{}, err
	}

	total := merge(results)
	if opts.Logger != nil {
		opts.Logger.Printf("Solved %d jobs in %d components with %s search: %d selected, income %v\n",
			len(jobs), len(components), opts.Strategy, len(total.Nodes), total.Income)
	}
	return total, nil
}

func solveConcurrently(components [][]int, workers int, solveOne func(int) error) error {
	queue := lane.NewMaxPriorityQueue[int, int]()
	for c, nodes := range components {
		queue.Push(c, len(nodes))
	}

	var wg sync.WaitGroup
	var once sync.Once
	var failed atomic.Bool
	var firstErr error
	for worker := 0; worker < min(workers, len(components)); worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !failed.Load() {
				c, _, ok := queue.Pop()
				if !ok {
					return
				}
				if err := solveOne(c); err != nil {
					once.Do(func() { firstErr = err })
					failed.Store(true)
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}

// merge concatenates the partial selections. The income is summed over the
// merged jobs in order, so it equals what a caller summing Jobs gets.
func merge[T job.Number](results []Solution[T]) Solution[T] {
	var total Solution[T]
	for _, partial := range results {
		total.Jobs = append(total.Jobs, partial.Jobs...)
		total.Nodes = append(total.Nodes, partial.Nodes...)
		total.Branches += partial.Branches
	}
	for _, j := range total.Jobs {
		total.Income += j.Income
	}
	return total
}

// Independent reports whether no two of the given nodes are adjacent in g.
func Independent(g *graph.Graph, nodes []int) bool {
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if g.Adjacent(nodes[i], nodes[j]) {
				return false
			}
		}
	}
	return true
}
