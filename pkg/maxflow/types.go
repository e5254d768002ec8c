package maxflow

import (
	"errors"

	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
)

var (
	ErrNotSolved = errors.New("graph is not solved yet")
)

// MinCut is the partition produced by a solve.
type MinCut[T da.Capacity] struct {
	flags              []bool // true if the node is on the sink side of the cut
	numNodesInSinkSide int
	flow               T
}

func NewMinCut[T da.Capacity](numberOfNodes int) *MinCut[T] {
	return &MinCut[T]{
		flags: make([]bool, numberOfNodes),
	}
}

func (mc *MinCut[T]) SetFlag(u da.Index, sinkSide bool) {
	if mc.flags[u] == sinkSide {
		return
	}
	mc.flags[u] = sinkSide
	if sinkSide {
		mc.numNodesInSinkSide++
	} else {
		mc.numNodesInSinkSide--
	}
}

// GetFlag is true when u is on the sink side.
func (mc *MinCut[T]) GetFlag(u da.Index) bool {
	return mc.flags[u]
}

func (mc *MinCut[T]) GetFlags() []bool {
	return mc.flags
}

func (mc *MinCut[T]) GetNumNodesInSinkSide() int {
	return mc.numNodesInSinkSide
}

func (mc *MinCut[T]) GetFlow() T {
	return mc.flow
}

func (mc *MinCut[T]) setFlow(flow T) {
	mc.flow = flow
}

// Stats counts the work done by one solve.
type Stats struct {
	ArcScans      uint64 `json:"arc_scans"`
	Augmentations uint64 `json:"augmentations"`
	Adoptions     uint64 `json:"adoptions"`
	FreedOrphans  uint64 `json:"freed_orphans"`
}
