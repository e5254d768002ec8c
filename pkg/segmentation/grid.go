package segmentation

import (
	"github.com/lintang-b-s/graphcut/pkg/util"
)

// WeightFunc returns the capacity of the edge between grid nodes u and v (0-based, column-major).
type WeightFunc func(u, v int) float64

var (
	// up, down, left, right
	fourNeighborhood = [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	eightNeighborhood = [][2]int{
		{0, -1}, {0, 1}, {-1, 0}, {1, 0},
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	}
)

// GridIndex is the 0-based index of pixel (x, y) in a column-major image of the given height,
// the order matlab stores arrays in.
func GridIndex(x, y, height int) int {
	return x*height + y
}

/*
GridNeighbors builds the neighbour slots of a width x height pixel grid with 4 or 8
connectivity, in the layout Problem expects: one row per pixel in column-major order, one slot
per direction holding the 1-based neighbour index, or 0 where the neighbour falls outside the
image. weight is called once per slot.
*/
func GridNeighbors(width, height, connectivity int, weight WeightFunc) ([][]float64, [][]float64, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, util.WrapErrorf(ErrInvalidGrid, util.ErrBadParamInput, "grid %dx%d", width, height)
	}

	var offsets [][2]int
	switch connectivity {
	case 4:
		offsets = fourNeighborhood
	case 8:
		offsets = eightNeighborhood
	default:
		return nil, nil, util.WrapErrorf(ErrInvalidConnectivity, util.ErrBadParamInput, "connectivity %d", connectivity)
	}

	n := width * height
	indices := make([][]float64, n)
	weights := make([][]float64, n)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			u := GridIndex(x, y, height)
			indices[u] = make([]float64, len(offsets))
			weights[u] = make([]float64, len(offsets))

			for s, off := range offsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				v := GridIndex(nx, ny, height)
				indices[u][s] = float64(v + 1)
				weights[u][s] = weight(u, v)
			}
		}
	}
	return indices, weights, nil
}

// NewGridProblem is a Problem over a pixel grid; source and sink are indexed column-major.
func NewGridProblem(width, height, connectivity int, source, sink []float64, weight WeightFunc) (*Problem, error) {
	indices, weights, err := GridNeighbors(width, height, connectivity, weight)
	if err != nil {
		return nil, err
	}
	p := &Problem{
		SourceWeights:   source,
		SinkWeights:     sink,
		NeighborIndices: indices,
		NeighborWeights: weights,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
