// Package graph is a small simple undirected graph over int nodes, enough to
// hold conflict graphs and split them into connected components.
package graph

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

var ErrUnknownNode = errors.New("node does not exist in the graph")

type Graph struct {
	adjacency map[int]mapset.Set[int]
	edges     int
}

func New() *Graph {
	return &Graph{adjacency: map[int]mapset.Set[int]{}}
}

func (g *Graph) AddNode(node int) {
	if _, found := g.adjacency[node]; !found {
		g.adjacency[node] = mapset.NewThreadUnsafeSet[int]()
	}
}

// AddEdge connects u and v, adding either endpoint if missing. Self-loops are
// ignored.
func (g *Graph) AddEdge(u, v int) {
	g.AddNode(u)
	g.AddNode(v)
	if u == v {
		return
	}
	if g.adjacency[u].Add(v) {
		g.adjacency[v].Add(u)
		g.edges++
	}
}

func (g *Graph) HasNode(node int) bool {
	_, found := g.adjacency[node]
	return found
}

func (g *Graph) Adjacent(u, v int) bool {
	neighbors, found := g.adjacency[u]
	return found && neighbors.Contains(v)
}

// Order is the number of nodes.
func (g *Graph) Order() int {
	return len(g.adjacency)
}

// Size is the number of edges.
func (g *Graph) Size() int {
	return g.edges
}

func (g *Graph) Degree(node int) int {
	neighbors, found := g.adjacency[node]
	if !found {
		return 0
	}
	return neighbors.Cardinality()
}

// Nodes returns all nodes in ascending order.
func (g *Graph) Nodes() []int {
	nodes := make([]int, 0, len(g.adjacency))
	for node := range g.adjacency {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	return nodes
}

// Neighbors returns the neighbors of node in ascending order, or nil when the
// node is not in the graph.
func (g *Graph) Neighbors(node int) []int {
	neighbors, found := g.adjacency[node]
	if !found {
		return nil
	}
	list := neighbors.ToSlice()
	slices.Sort(list)
	return list
}

// Edges returns every edge once as {u, v} with u < v, sorted.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, 0, g.edges)
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return edges
}

// Subgraph returns the subgraph induced by nodes.
func (g *Graph) Subgraph(nodes []int) (*Graph, error) {
	sub := New()
	for _, node := range nodes {
		if !g.HasNode(node) {
			return nil, fmt.Errorf("subgraph of node %d: %w", node, ErrUnknownNode)
		}
		sub.AddNode(node)
	}
	for node := range sub.adjacency {
		g.adjacency[node].Each(func(neighbor int) bool {
			if sub.HasNode(neighbor) {
				sub.AddEdge(node, neighbor)
			}
			return false
		})
	}
	return sub, nil
}

// Equal reports whether both graphs have the same nodes and the same edges.
func (g *Graph) Equal(other *Graph) bool {
	if g.Order() != other.Order() || g.Size() != other.Size() {
		return false
	}
	for node, neighbors := range g.adjacency {
		theirs, found := other.adjacency[node]
		if !found || !neighbors.Equal(theirs) {
			return false
		}
	}
	return true
}
