package segmentation

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemFile(t *testing.T) {
	p := &Problem{
		SourceWeights:   []float64{1.5, 0, 2},
		SinkWeights:     []float64{0, 0.25, 3},
		NeighborIndices: [][]float64{{2, 0}, {1, 3}, {2, 0}},
		NeighborWeights: [][]float64{{0.5, 0}, {0.5, 1}, {1, 0}},
	}

	for _, compress := range []bool{false, true} {
		filename := filepath.Join(t.TempDir(), "problem.txt")
		require.NoError(t, WriteProblem(filename, p, compress))

		raw, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, compress, bytes.HasPrefix(raw, bzip2Magic))

		got, err := ReadProblem(filename)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestDecodeProblem(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectedErr bool
		numNodes    int
	}{
		{
			name:     "comments and blank lines",
			input:    "# two nodes\ngraphcut 2 1\n\n10 0 0 0\n0 10 1 5\n",
			numNodes: 2,
		},
		{
			name:     "no trailing newline",
			input:    "graphcut 1 0\n5 3",
			numNodes: 1,
		},
		{
			name:        "wrong header",
			input:       "maxflow 2 1\n",
			expectedErr: true,
		},
		{
			name:        "missing node lines",
			input:       "graphcut 3 0\n1 1\n",
			expectedErr: true,
		},
		{
			name:        "short node line",
			input:       "graphcut 1 2\n1 1 0 0 0\n",
			expectedErr: true,
		},
		{
			name:        "not a number",
			input:       "graphcut 1 0\n1 x\n",
			expectedErr: true,
		},
		{
			name:        "huge node count",
			input:       "graphcut 9000000000000000 1\n",
			expectedErr: true,
		},
		{
			name:        "node count larger than the input",
			input:       "graphcut 500000000 0\n1 1\n",
			expectedErr: true,
		},
		{
			name:        "huge direction count",
			input:       "graphcut 1 9223372036854775807\n1 1\n",
			expectedErr: true,
		},
		{
			name:        "empty input",
			input:       "",
			expectedErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeProblem(bufio.NewReader(strings.NewReader(tt.input)))
			if tt.expectedErr {
				assert.True(t, errors.Is(err, ErrMalformedProblem), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.numNodes, p.NumNodes())
			assert.NoError(t, p.Validate())
		})
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, &Result{Labels: []uint8{0, 1, 1}, Energy: 2.5}))
	assert.Equal(t, "0\n1\n1\nenergy 2.5\n", buf.String())
}
