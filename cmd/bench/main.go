// Command bench measures how many DAG nodes the search can expand per
// second of think time on a freshly spawned board, as a throughput smoke
// test for the search/eval/movegen stack.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/search"
)

var (
	thinkTime = flag.Duration("think_time", time.Second, "search budget per trial")
	trials    = flag.Int("trials", 5, "number of independent trials to average")
	bagSeed   = flag.Int64("bag_seed", 42, "7-bag seed for the benchmark board")
)

func main() {
	flag.Parse()

	cfg := libtetris.DefaultGameConfig()
	evaluator := eval.NewStandard(eval.DefaultWeights())

	var totalNodes int
	for t := 0; t < *trials; t++ {
		bag := libtetris.NewBag(*bagSeed + int64(t))
		board := libtetris.NewBoard()
		for i := uint32(0); i < cfg.NextQueueSize; i++ {
			board.Queue = append(board.Queue, bag.Next())
		}
		current := bag.Next()

		searchCfg := search.DefaultConfig()
		searchCfg.Timeout = *thinkTime

		s := search.New(board, current, nil, cfg, evaluator, searchCfg)

		ctx, cancel := context.WithTimeout(context.Background(), *thinkTime)
		start := time.Now()
		s.Run(ctx)
		elapsed := time.Since(start)
		cancel()

		nodes := s.NodeCount()
		totalNodes += nodes
		log.Printf("trial %d: %d nodes in %s (%.0f nodes/sec)", t, nodes, elapsed, float64(nodes)/elapsed.Seconds())
	}

	log.Printf("average nodes per trial: %d", totalNodes/max(*trials, 1))
}
