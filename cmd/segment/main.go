package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/maxflow"
	"github.com/lintang-b-s/graphcut/pkg/segmentation"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"go.uber.org/zap"
)

var (
	inputFile  = flag.String("input", "", "problem file, plain or bzip2 compressed")
	outputFile = flag.String("output", "", "labels file, one 0/1 per line followed by the energy. stdout when empty")
	verify     = flag.Bool("verify", false, "cross-check the energy against dinic and the capacity of the returned cut")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: segment -input problem.txt [-output labels.txt] [-verify]")
		os.Exit(2)
	}

	if err := run(log); err != nil {
		log.Error("segmentation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger) error {
	p, err := segmentation.ReadProblem(*inputFile)
	if err != nil {
		return err
	}
	log.Info("problem loaded", zap.String("file", *inputFile),
		zap.Int("nodes", p.NumNodes()), zap.Int("directions", p.NumDirections()))

	res, err := segmentation.Solve(p, log)
	if err != nil {
		return err
	}
	log.Info("solved", zap.Float64("energy", res.Energy), zap.Any("stats", res.Stats))

	if *verify {
		if err := verifyResult(p, res, log); err != nil {
			return err
		}
	}

	var out io.Writer = os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return segmentation.WriteResult(out, res)
}

func verifyResult(p *segmentation.Problem, res *segmentation.Result, log *zap.Logger) error {
	g, err := segmentation.BuildGraph(p)
	if err != nil {
		return err
	}
	dinicEnergy := maxflow.NewDinicMaxFlow(g).ComputeMaxflowMinCut().GetFlow()

	cut := maxflow.NewMinCut[float64](len(res.Labels))
	for u, label := range res.Labels {
		cut.SetFlag(da.Index(u), label == 1)
	}
	cutCapacity := maxflow.CutCapacity(g, cut)

	tolerance := maxflow.FLOW_TOLERANCE * math.Max(1, math.Abs(dinicEnergy))
	log.Info("verification",
		zap.Float64("energy", res.Energy),
		zap.Float64("dinic_energy", dinicEnergy),
		zap.Float64("cut_capacity", cutCapacity))

	if math.Abs(dinicEnergy-res.Energy) > tolerance || math.Abs(cutCapacity-res.Energy) > tolerance {
		return fmt.Errorf("verification failed: energy %v, dinic %v, cut capacity %v",
			res.Energy, dinicEnergy, cutCapacity)
	}
	return nil
}
