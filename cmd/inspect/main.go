// Command inspect runs a single search from a fresh board and writes the
// explored DAG as Graphviz dot, for visually debugging the search's
// node-expansion and ranking behavior.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/search"
)

var (
	thinkTime = flag.Duration("think_time", 200*time.Millisecond, "search budget")
	bagSeed   = flag.Int64("bag_seed", 7, "7-bag seed for the inspected board")
	outPath   = flag.String("out", "search.dot", "file to write the dot graph to")
	debug     = flag.Bool("debug", false, "panic on a Value regression instead of silently ignoring it")
)

func main() {
	flag.Parse()
	eval.Debug = *debug

	cfg := libtetris.DefaultGameConfig()
	bag := libtetris.NewBag(*bagSeed)
	board := libtetris.NewBoard()
	for i := uint32(0); i < cfg.NextQueueSize; i++ {
		board.Queue = append(board.Queue, bag.Next())
	}
	current := bag.Next()

	evaluator := eval.NewStandard(eval.DefaultWeights())
	searchCfg := search.DefaultConfig()
	searchCfg.Timeout = *thinkTime

	s := search.New(board, current, nil, cfg, evaluator, searchCfg)
	ctx, cancel := context.WithTimeout(context.Background(), *thinkTime)
	defer cancel()
	s.Run(ctx)

	placement, value, ok := s.BestPlacement(0)
	if !ok {
		log.Fatal("search produced no candidates")
	}
	log.Printf("best placement: %+v value=%.2f nodes=%d", placement.Piece, value.Total, s.NodeCount())

	dot, err := s.DOT()
	if err != nil {
		log.Fatalf("rendering dot graph: %v", err)
	}
	if err := os.WriteFile(*outPath, []byte(dot), 0644); err != nil {
		log.Fatalf("writing %s: %v", *outPath, err)
	}
	log.Printf("wrote %s", *outPath)
}
