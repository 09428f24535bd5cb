package graph

import (
	"slices"

	"github.com/oleiade/lane/v2"
)

// Components partitions the nodes into connected components. Each component
// is sorted ascending and components are ordered by their smallest node.
func (g *Graph) Components() [][]int {
	visited := make(map[int]bool, len(g.adjacency))
	var components [][]int
	for _, node := range g.Nodes() {
		if visited[node] {
			continue
		}
		components = append(components, g.bfs(node, visited))
	}
	return components
}

func (g *Graph) bfs(start int, visited map[int]bool) []int {
	queue := lane.NewQueue[int]()
	queue.Enqueue(start)
	visited[start] = true
	var component []int
	for {
		node, ok := queue.Dequeue()
		if !ok {
			break
		}
		component = append(component, node)
		g.adjacency[node].Each(func(neighbor int) bool {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue.Enqueue(neighbor)
			}
			return false
		})
	}
	slices.Sort(component)
	return component
}
