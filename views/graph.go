package views

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/juho05/log"
)

var ErrCycle = errors.New("dependency cycle")

// Node is a view that can take part in a Graph.
type Node interface {
	CacheID() int64
	Version() uint64
	Reload(ctx context.Context) error
}

type graphNode struct {
	node     Node
	parents  []*graphNode
	children []*graphNode
	// applies derive the predicate of node from its parents.
	applies []func(ctx context.Context) error
	// seen holds the parent versions node was last recomputed from.
	seen map[int64]uint64
}

// Graph recomputes dependent views when a view they depend on changes.
type Graph struct {
	mu    sync.Mutex
	nodes map[int64]*graphNode
	order []*graphNode
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[int64]*graphNode),
	}
}

func (g *Graph) get(n Node) *graphNode {
	gn, ok := g.nodes[n.CacheID()]
	if !ok {
		gn = &graphNode{
			node: n,
			seen: make(map[int64]uint64),
		}
		g.nodes[n.CacheID()] = gn
	}
	return gn
}

// AddDependency makes child depend on parents. Whenever the version of a parent
// changed since the last Update, all apply functions of child are called in the
// order they were added and child is reloaded. apply may be nil.
// Adding a dependency that would create a cycle returns ErrCycle and leaves the graph unchanged.
func (g *Graph) AddDependency(child Node, apply func(ctx context.Context) error, parents ...Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, childExisted := g.nodes[child.CacheID()]
	c := g.get(child)
	oldParents := c.parents
	oldApplies := c.applies
	added := make([]*graphNode, 0, len(parents))
	for _, p := range parents {
		_, existed := g.nodes[p.CacheID()]
		pn := g.get(p)
		if !existed {
			added = append(added, pn)
		}
		c.parents = append(c.parents, pn)
		pn.children = append(pn.children, c)
	}
	if apply != nil {
		c.applies = append(c.applies, apply)
	}

	order, err := g.sort()
	if err != nil {
		for _, p := range c.parents[len(oldParents):] {
			p.children = p.children[:len(p.children)-1]
		}
		c.parents = oldParents
		c.applies = oldApplies
		for _, pn := range added {
			delete(g.nodes, pn.node.CacheID())
		}
		if !childExisted {
			delete(g.nodes, child.CacheID())
		}
		return fmt.Errorf("add dependency of %d: %w", child.CacheID(), err)
	}
	g.order = order
	return nil
}

// Remove removes n and all of its edges from the graph.
func (g *Graph) Remove(n Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	gn, ok := g.nodes[n.CacheID()]
	if !ok {
		return
	}
	for _, p := range gn.parents {
		p.children = removeNode(p.children, gn)
	}
	for _, c := range gn.children {
		c.parents = removeNode(c.parents, gn)
		delete(c.seen, n.CacheID())
	}
	delete(g.nodes, n.CacheID())
	g.order = removeNode(g.order, gn)
}

// Update recomputes every node whose parents changed in topological order and
// returns the number of recomputed nodes. It stops at the first error.
func (g *Graph) Update(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	recomputed := 0
	for _, n := range g.order {
		if len(n.parents) == 0 || !n.stale() {
			continue
		}
		for _, apply := range n.applies {
			err := apply(ctx)
			if err != nil {
				return recomputed, fmt.Errorf("update graph: apply %d: %w", n.node.CacheID(), err)
			}
		}
		err := n.node.Reload(ctx)
		if err != nil {
			return recomputed, fmt.Errorf("update graph: %w", err)
		}
		for _, p := range n.parents {
			n.seen[p.node.CacheID()] = p.node.Version()
		}
		recomputed++
	}
	if recomputed > 0 {
		log.Tracef("graph update recomputed %d views", recomputed)
	}
	return recomputed, nil
}

func (n *graphNode) stale() bool {
	for _, p := range n.parents {
		v, ok := n.seen[p.node.CacheID()]
		if !ok || v != p.node.Version() {
			return true
		}
	}
	return false
}

// sort returns all nodes in topological order (Kahn's algorithm).
func (g *Graph) sort() ([]*graphNode, error) {
	inDegree := make(map[*graphNode]int, len(g.nodes))
	for _, n := range g.nodes {
		inDegree[n] = len(n.parents)
	}
	queue := make([]*graphNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}
	order := make([]*graphNode, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, c := range n.children {
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, ErrCycle
	}
	return order, nil
}

func removeNode(nodes []*graphNode, n *graphNode) []*graphNode {
	result := nodes[:0]
	for _, o := range nodes {
		if o != n {
			result = append(result, o)
		}
	}
	return result
}
