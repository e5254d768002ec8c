package maxflow

import (
	"container/list"

	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
)

const INVALID_LEVEL = -1

type dinicEdge[T da.Capacity] struct {
	to       int
	capacity T
	residual T
}

/*
DinicMaxFlow is the level graph + blocking flow algorithm, run on a separate residual network
built from the constructed capacities of a Graph (two extra vertices stand for the source and
the sink). it does not touch the graph, so it can check a BKMaxFlow result on the same graph.

time complexity: O(N^2 * M), N,M = number of vertices & arcs
*/
type DinicMaxFlow[T da.Capacity] struct {
	adj           [][]int // edge ids leaving each vertex
	edges         []dinicEdge[T]
	level         []int
	lastEdgeIndex []int
	source, sink  int
	numNodes      int
}

func NewDinicMaxFlow[T da.Capacity](graph *da.Graph[T]) *DinicMaxFlow[T] {
	n := graph.NumberOfNodes()
	dmf := &DinicMaxFlow[T]{
		adj:           make([][]int, n+2),
		edges:         make([]dinicEdge[T], 0, graph.NumberOfArcs()+4*n),
		level:         make([]int, n+2),
		lastEdgeIndex: make([]int, n+2),
		source:        n,
		sink:          n + 1,
		numNodes:      n,
	}

	graph.ForEachNode(func(u da.Index, node *da.Node[T]) {
		if c := node.GetSourceCap(); c > 0 {
			dmf.addEdge(dmf.source, int(u), c)
		}
		if c := node.GetSinkCap(); c > 0 {
			dmf.addEdge(int(u), dmf.sink, c)
		}
		graph.ForEachArcOf(u, func(a da.Index, arc *da.Arc[T]) {
			if c := arc.GetCapacity(); c > 0 {
				dmf.addEdge(int(u), int(arc.GetHead()), c)
			}
		})
	})
	return dmf
}

func (dmf *DinicMaxFlow[T]) addEdge(u, v int, capacity T) {
	id := len(dmf.edges)
	dmf.edges = append(dmf.edges,
		dinicEdge[T]{to: v, capacity: capacity, residual: capacity},
		dinicEdge[T]{to: u},
	)
	dmf.adj[u] = append(dmf.adj[u], id)
	dmf.adj[v] = append(dmf.adj[v], id+1)
}

func (dmf *DinicMaxFlow[T]) bfsLevelGraph() bool {
	for i := range dmf.level {
		dmf.level[i] = INVALID_LEVEL
	}

	levelQueue := list.New()
	levelQueue.PushBack(dmf.source)
	dmf.level[dmf.source] = 0

	for levelQueue.Len() > 0 {
		u := levelQueue.Remove(levelQueue.Front()).(int)
		if u == dmf.sink {
			break
		}

		for _, e := range dmf.adj[u] {
			v := dmf.edges[e].to
			if dmf.edges[e].residual > 0 && dmf.level[v] == INVALID_LEVEL {
				dmf.level[v] = dmf.level[u] + 1
				levelQueue.PushBack(v)
			}
		}
	}
	return dmf.level[dmf.sink] != INVALID_LEVEL
}

func (dmf *DinicMaxFlow[T]) dfsAugmentPath(u int, f T) T {
	if u == dmf.sink || f == 0 {
		return f
	}

	for ; dmf.lastEdgeIndex[u] < len(dmf.adj[u]); dmf.lastEdgeIndex[u]++ {
		e := dmf.adj[u][dmf.lastEdgeIndex[u]]
		v := dmf.edges[e].to
		residual := dmf.edges[e].residual
		if residual <= 0 || dmf.level[v] != dmf.level[u]+1 {
			continue
		}

		if pushed := dmf.dfsAugmentPath(v, min(residual, f)); pushed > 0 {
			dmf.edges[e].residual -= pushed
			dmf.edges[e^1].residual += pushed
			return pushed
		}
	}

	return 0
}

// ComputeMaxflowMinCut returns the max-flow value and the cut whose source side is the set
// of nodes reachable from the source in the final residual network.
func (dmf *DinicMaxFlow[T]) ComputeMaxflowMinCut() *MinCut[T] {
	var (
		maxFlow T
		limit   T // no augmenting path carries more than everything leaving the source
	)
	for _, e := range dmf.adj[dmf.source] {
		limit += dmf.edges[e].capacity
	}

	for limit > 0 && dmf.bfsLevelGraph() {
		for i := range dmf.lastEdgeIndex {
			dmf.lastEdgeIndex[i] = 0
		}

		for {
			flow := dmf.dfsAugmentPath(dmf.source, limit)
			if flow <= 0 {
				break
			}
			maxFlow += flow
		}
	}

	return dmf.makeMinCutFlags(maxFlow)
}

func (dmf *DinicMaxFlow[T]) makeMinCutFlags(maxFlow T) *MinCut[T] {
	// the last bfs ran to exhaustion without reaching the sink, so the levels mark reachability
	dmf.bfsLevelGraph()

	minCut := NewMinCut[T](dmf.numNodes)
	for u := 0; u < dmf.numNodes; u++ {
		if dmf.level[u] == INVALID_LEVEL {
			minCut.SetFlag(da.Index(u), true)
		}
	}
	minCut.setFlow(maxFlow)
	return minCut
}
