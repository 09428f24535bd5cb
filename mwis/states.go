package mwis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/oleiade/lane/v2"
	"jobincome_go/graph"
	"jobincome_go/job"
)

var errInvalidTransition = errors.New("invalid node state transition")

type nodeState uint8

const (
	unset nodeState = iota
	active
	unactive
	discarded
)

func (s nodeState) String() string {
	return [...]string{"unset", "active", "unactive", "discarded"}[s]
}

// stateMachine tracks a decision for every candidate node. Activating a node
// discards its unset neighbors; resetting it brings exactly those back.
type stateMachine struct {
	g        *graph.Graph
	order    []int
	index    map[int]int
	states   []nodeState
	discards [][]int // indexes discarded by the activation of each index
	next     int     // no unset node before this index
}

func newStateMachine(g *graph.Graph, order []int) *stateMachine {
	m := &stateMachine{
		g:        g,
		order:    order,
		index:    make(map[int]int, len(order)),
		states:   make([]nodeState, len(order)),
		discards: make([][]int, len(order)),
	}
	for i, node := range order {
		m.index[node] = i
	}
	return m
}

func (m *stateMachine) indexOf(node int) (int, error) {
	i, found := m.index[node]
	if !found {
		return 0, fmt.Errorf("node %d: %w", node, graph.ErrUnknownNode)
	}
	return i, nil
}

func (m *stateMachine) stateOf(node int) (nodeState, error) {
	i, err := m.indexOf(node)
	if err != nil {
		return unset, err
	}
	return m.states[i], nil
}

// nextNode returns the first unset node, if any.
func (m *stateMachine) nextNode() (int, bool) {
	for m.next < len(m.order) && m.states[m.next] != unset {
		m.next++
	}
	if m.next >= len(m.order) {
		return 0, false
	}
	return m.order[m.next], true
}

func (m *stateMachine) activate(node int) error {
	i, err := m.indexOf(node)
	if err != nil {
		return err
	}
	if m.states[i] != unset {
		return fmt.Errorf("activate %s node %d: %w", m.states[i], node, errInvalidTransition)
	}
	m.states[i] = active
	for _, neighbor := range m.g.Neighbors(node) {
		j, found := m.index[neighbor]
		if found && m.states[j] == unset {
			m.states[j] = discarded
			m.discards[i] = append(m.discards[i], j)
		}
	}
	return nil
}

func (m *stateMachine) deactivate(node int) error {
	i, err := m.indexOf(node)
	if err != nil {
		return err
	}
	if m.states[i] != unset {
		return fmt.Errorf("deactivate %s node %d: %w", m.states[i], node, errInvalidTransition)
	}
	m.states[i] = unactive
	return nil
}

func (m *stateMachine) unset(node int) error {
	i, err := m.indexOf(node)
	if err != nil {
		return err
	}
	switch m.states[i] {
	case unset:
		return nil
	case discarded:
		return fmt.Errorf("unset discarded node %d: %w", node, errInvalidTransition)
	case active:
		for _, j := range m.discards[i] {
			m.states[j] = unset
			m.next = min(m.next, j)
		}
		m.discards[i] = m.discards[i][:0]
	}
	m.states[i] = unset
	m.next = min(m.next, i)
	return nil
}

type stage uint8

const (
	stageActivate stage = iota
	stageDeactivate
	stageReset
)

// frame is a pending decision on node; income is the running total before
// the node was taken, restored on backtrack instead of subtracting.
type frame[T job.Number] struct {
	node   int
	stage  stage
	income T
}

// SolveByStates computes the same solution as SolveComponent, walking the
// search tree with an explicit stack of node decisions instead of recursion.
func SolveByStates[T job.Number](g *graph.Graph, jobs []job.Job[T], candidates []int, opts Options) (Solution[T], error) {
	if err := checkCandidates(g, jobs, candidates); err != nil {
		return Solution[T]{}, err
	}
	m := newStateMachine(g, candidates)
	stack := lane.NewStack[frame[T]]()

	var taken, bestNodes []int
	var income, bestIncome T
	found := false
	branches := 0

	descend := func() error {
		branches++
		if opts.MaxBranches > 0 && branches > opts.MaxBranches {
			return fmt.Errorf("%w after %d branches", ErrBranchLimit, opts.MaxBranches)
		}
		if node, ok := m.nextNode(); ok {
			stack.Push(frame[T]{node: node, stage: stageActivate})
			return nil
		}
		if !found || income > bestIncome {
			bestNodes = slices.Clone(taken)
			bestIncome = income
			found = true
		}
		return nil
	}

	if err := descend(); err != nil {
		return Solution[T]{}, err
	}
	for {
		f, ok := stack.Pop()
		if !ok {
			break
		}
		var err error
		switch f.stage {
		case stageActivate:
			if err = m.activate(f.node); err != nil {
				break
			}
			stack.Push(frame[T]{node: f.node, stage: stageDeactivate, income: income})
			taken = append(taken, f.node)
			income += jobs[f.node].Income
			err = descend()
		case stageDeactivate:
			if err = m.unset(f.node); err != nil {
				break
			}
			taken = taken[:len(taken)-1]
			income = f.income
			if err = m.deactivate(f.node); err != nil {
				break
			}
			stack.Push(frame[T]{node: f.node, stage: stageReset})
			err = descend()
		case stageReset:
			err = m.unset(f.node)
		}
		if err != nil {
			return Solution[T]{}, err
		}
	}
	return newSolution(jobs, bestNodes, branches), nil
}
