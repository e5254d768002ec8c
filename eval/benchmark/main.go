package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	log "github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/maxflow"
	"github.com/lintang-b-s/graphcut/pkg/segmentation"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	seed         = flag.Uint64("seed", 1, "random seed")
	connectivity = flag.Int("connectivity", 4, "grid connectivity, 4 or 8")
	runs         = flag.Int("runs", 3, "solves per grid size, the fastest one is reported")
	lambda       = flag.Float64("lambda", 2.0, "smoothness weight")
)

var gridSizes = []int{32, 64, 128, 256, 512}

// syntheticImage is a noisy two-tone image: a bright square on a dark background.
func syntheticImage(rd *rand.Rand, size int) []float64 {
	img := make([]float64, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			v := 0.25
			if x > size/4 && x < 3*size/4 && y > size/4 && y < 3*size/4 {
				v = 0.75
			}
			v += rd.NormFloat64() * 0.15
			img[segmentation.GridIndex(x, y, size)] = math.Min(1, math.Max(0, v))
		}
	}
	return img
}

// gridProblem builds the usual unary/pairwise energy: the negative log likelihood of each
// intensity under the two tones, and edge weights that drop across strong intensity changes.
func gridProblem(img []float64, size int) (*segmentation.Problem, error) {
	source := make([]float64, len(img))
	sink := make([]float64, len(img))
	for i, v := range img {
		source[i] = (v - 0.25) * (v - 0.25) * 10
		sink[i] = (v - 0.75) * (v - 0.75) * 10
	}
	return segmentation.NewGridProblem(size, size, *connectivity, source, sink, func(u, v int) float64 {
		d := img[u] - img[v]
		return *lambda * math.Exp(-d*d/0.02)
	})
}

func timeIt(f func() error) (time.Duration, error) {
	best := time.Duration(math.MaxInt64)
	for i := 0; i < *runs; i++ {
		start := time.Now()
		if err := f(); err != nil {
			return 0, err
		}
		best = min(best, time.Since(start))
	}
	return best, nil
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	rd := rand.New(rand.NewSource(*seed))
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "grid\tnodes\tedges\tenergy\tbk\tdinic\tspeedup\taugmentations")

	for _, size := range gridSizes {
		p, err := gridProblem(syntheticImage(rd, size), size)
		if err != nil {
			panic(err)
		}

		var res *segmentation.Result
		bkTime, err := timeIt(func() error {
			res, err = segmentation.Solve(p, nil)
			return err
		})
		if err != nil {
			panic(err)
		}

		var dinicEnergy float64
		dinicTime, err := timeIt(func() error {
			g, err := segmentation.BuildGraph(p)
			if err != nil {
				return err
			}
			dinicEnergy = maxflow.NewDinicMaxFlow(g).ComputeMaxflowMinCut().GetFlow()
			return nil
		})
		if err != nil {
			panic(err)
		}

		if math.Abs(dinicEnergy-res.Energy) > 1e-6*math.Max(1, dinicEnergy) {
			logger.Error("energies differ", zap.Int("size", size),
				zap.Float64("bk", res.Energy), zap.Float64("dinic", dinicEnergy))
		}

		g, _ := segmentation.BuildGraph(p)
		fmt.Fprintf(tw, "%dx%d\t%d\t%d\t%.3f\t%v\t%v\t%.1fx\t%d\n",
			size, size, g.NumberOfNodes(), g.NumberOfEdges(), res.Energy,
			bkTime.Round(time.Microsecond), dinicTime.Round(time.Microsecond),
			float64(dinicTime)/float64(bkTime), res.Stats.Augmentations)
	}
	tw.Flush()
	logger.Info("benchmark done", zap.Uint64("seed", *seed), zap.Int("connectivity", *connectivity))
}
