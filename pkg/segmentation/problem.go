package segmentation

import (
	"fmt"

	"github.com/lintang-b-s/graphcut/pkg/maxflow"
	"github.com/lintang-b-s/graphcut/pkg/util"
)

/*
Problem is a binary labeling instance in the layout of the matlab maxflow wrapper:

  - SourceWeights[i]: capacity from the source (background) to node i.
  - SinkWeights[i]: capacity from node i to the sink (foreground).
  - NeighborIndices[i][j]: 1-based index of the j-th neighbour of node i, 0 for an empty slot.
  - NeighborWeights[i][j]: symmetric capacity of that edge.

an unordered pair is added once, from the slot of its higher indexed node, so the slot of the
lower indexed node is ignored.
*/
type Problem struct {
	SourceWeights   []float64   `json:"source_weights"`
	SinkWeights     []float64   `json:"sink_weights"`
	NeighborIndices [][]float64 `json:"neighbor_indices"`
	NeighborWeights [][]float64 `json:"neighbor_weights"`
}

func (p *Problem) NumNodes() int {
	return len(p.SourceWeights)
}

// NumDirections is the number of neighbour slots per node.
func (p *Problem) NumDirections() int {
	if len(p.NeighborIndices) == 0 {
		return 0
	}
	return len(p.NeighborIndices[0])
}

// Validate checks that every array agrees on the number of nodes and neighbour slots.
func (p *Problem) Validate() error {
	n := p.NumNodes()
	if len(p.SinkWeights) != n {
		return shapeError("sink_weights", "weight arrays must be same length: %d source, %d sink",
			n, len(p.SinkWeights))
	}
	if len(p.NeighborIndices) != n {
		return shapeError("neighbor_indices", "number of rows for edge matrix %d does not match number of nodes %d",
			len(p.NeighborIndices), n)
	}
	if len(p.NeighborWeights) != len(p.NeighborIndices) {
		return shapeError("neighbor_weights", "edge weights matrix has %d rows, edge indices matrix %d",
			len(p.NeighborWeights), len(p.NeighborIndices))
	}

	d := p.NumDirections()
	for i := range p.NeighborIndices {
		if len(p.NeighborIndices[i]) != d {
			return shapeError("neighbor_indices", "row %d has %d slots, expected %d", i, len(p.NeighborIndices[i]), d)
		}
		if len(p.NeighborWeights[i]) != d {
			return shapeError("neighbor_weights", "edge weights matrix does not match edge indices matrix at row %d", i)
		}
	}
	return nil
}

func shapeError(argument, format string, a ...interface{}) error {
	return util.WrapErrorf(&ArgumentShapeError{Argument: argument, Msg: fmt.Sprintf(format, a...)},
		util.ErrBadParamInput, "invalid problem")
}

// Result is the labeling of a solved Problem.
type Result struct {
	Labels []uint8 // 1 if the node ended on the sink side
	Energy float64 // min-cut value
	Stats  maxflow.Stats
}
