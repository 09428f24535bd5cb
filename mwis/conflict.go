package mwis

import (
	"jobincome_go/graph"
	"jobincome_go/job"
)

// BuildConflictGraph has a node per job index and an edge between every pair
// of jobs that conflict. Jobs without conflicts stay as isolated nodes.
func BuildConflictGraph[T job.Number](jobs []job.Job[T]) *graph.Graph {
	g := graph.New()
	for i := range jobs {
		g.AddNode(i)
	}
	for i := 0; i < len(jobs)-1; i++ {
		for j := i + 1; j < len(jobs); j++ {
			if job.Conflicts(jobs[i], jobs[j]) {
				g.AddEdge(i, j)
			}
		}
	}
	return g
}
