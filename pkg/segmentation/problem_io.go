package segmentation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/lintang-b-s/graphcut/pkg/util"
)

const PROBLEM_HEADER = "graphcut"

// header counts are not trusted for allocation beyond this many nodes; the arrays grow as
// node lines are read.
const MAX_PREALLOC_NODES = 1 << 16

var bzip2Magic = []byte("BZh")

/*
WriteProblem stores p as text, bzip2 compressed when compress is set:

	graphcut <numNodes> <numDirections>
	<source> <sink> <index_1> ... <index_D> <weight_1> ... <weight_D>   (one line per node)

lines starting with # and blank lines are ignored by ReadProblem.
*/
func WriteProblem(filename string, p *Problem, compress bool) error {
	if err := p.Validate(); err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !compress {
		w := bufio.NewWriter(f)
		if err := EncodeProblem(w, p); err != nil {
			return err
		}
		return w.Flush()
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	w := bufio.NewWriter(bz)
	if err := EncodeProblem(w, p); err != nil {
		bz.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func EncodeProblem(w io.Writer, p *Problem) error {
	n, d := p.NumNodes(), p.NumDirections()
	if _, err := fmt.Fprintf(w, "%s %d %d\n", PROBLEM_HEADER, n, d); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		tokens := make([]string, 0, 2+2*d)
		tokens = append(tokens, formatFloat(p.SourceWeights[i]), formatFloat(p.SinkWeights[i]))
		for _, idx := range p.NeighborIndices[i] {
			tokens = append(tokens, formatFloat(idx))
		}
		for _, weight := range p.NeighborWeights[i] {
			tokens = append(tokens, formatFloat(weight))
		}
		if _, err := fmt.Fprintln(w, strings.Join(tokens, " ")); err != nil {
			return err
		}
	}
	return nil
}

// ReadProblem loads a file written by WriteProblem, compressed or not.
func ReadProblem(filename string) (*Problem, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(len(bzip2Magic))
	if err == nil && bytes.Equal(magic, bzip2Magic) {
		bz, err := bzip2.NewReader(br, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		br = bufio.NewReader(bz)
	}

	return DecodeProblem(br)
}

func DecodeProblem(br *bufio.Reader) (*Problem, error) {
	lineNumber := 0
	nextLine := func() ([]string, error) {
		for {
			line, err := util.ReadLine(br)
			if err != nil {
				return nil, err
			}
			lineNumber++
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return util.Fields(line), nil
		}
	}

	header, err := nextLine()
	if err != nil {
		return nil, malformed(lineNumber, "missing header: %v", err)
	}
	if len(header) != 3 || header[0] != PROBLEM_HEADER {
		return nil, malformed(lineNumber, "header must be %q <numNodes> <numDirections>", PROBLEM_HEADER)
	}
	n, err := strconv.Atoi(header[1])
	if err != nil || n < 0 || uint64(n) > uint64(da.MAX_INDEX) {
		return nil, malformed(lineNumber, "bad node count %q", header[1])
	}
	d, err := strconv.Atoi(header[2])
	if err != nil || d < 0 || d > (math.MaxInt-2)/2 {
		return nil, malformed(lineNumber, "bad direction count %q", header[2])
	}

	prealloc := min(n, MAX_PREALLOC_NODES)
	p := &Problem{
		SourceWeights:   make([]float64, 0, prealloc),
		SinkWeights:     make([]float64, 0, prealloc),
		NeighborIndices: make([][]float64, 0, prealloc),
		NeighborWeights: make([][]float64, 0, prealloc),
	}
	for i := 0; i < n; i++ {
		tokens, err := nextLine()
		if errors.Is(err, io.EOF) {
			return nil, malformed(lineNumber, "expected %d nodes, got %d", n, i)
		}
		if err != nil {
			return nil, err
		}
		if len(tokens) != 2+2*d {
			return nil, malformed(lineNumber, "node %d has %d values, expected %d", i, len(tokens), 2+2*d)
		}

		values := make([]float64, len(tokens))
		for k, tok := range tokens {
			values[k], err = strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, malformed(lineNumber, "value %q: %v", tok, err)
			}
		}
		p.SourceWeights = append(p.SourceWeights, values[0])
		p.SinkWeights = append(p.SinkWeights, values[1])
		p.NeighborIndices = append(p.NeighborIndices, values[2:2+d:2+d])
		p.NeighborWeights = append(p.NeighborWeights, values[2+d:])
	}
	return p, nil
}

// WriteResult writes one label per line followed by "energy <value>".
func WriteResult(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, label := range res.Labels {
		fmt.Fprintf(bw, "%d\n", label)
	}
	fmt.Fprintf(bw, "energy %s\n", formatFloat(res.Energy))
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func malformed(line int, format string, a ...interface{}) error {
	return util.WrapErrorf(ErrMalformedProblem, util.ErrBadParamInput, "line %d: %s", line, fmt.Sprintf(format, a...))
}
