// Command selfplay runs one bot-versus-bot battle to completion and prints
// the outcome, for exercising the full libtetris/movegen/eval/search/battle
// stack end to end.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/coldclear/core/battle"
	"github.com/coldclear/core/bot"
	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/search"
)

var (
	seedFlag  = flag.Int64("seed", 1, "battle seed, governing garbage hole columns and both players' 7-bags")
	thinkTime = flag.Duration("think_time", 50*time.Millisecond, "per-move search budget")
	maxTicks  = flag.Int("max_ticks", 100000, "safety cap on simulated ticks")
)

func main() {
	flag.Parse()

	cfg := libtetris.DefaultGameConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid game config: %v", err)
	}

	bt := battle.New(cfg, cfg, *seedFlag)

	searchCfg := search.DefaultConfig()
	searchCfg.Timeout = *thinkTime

	evaluator := eval.NewStandard(eval.DefaultWeights())

	botA := bot.New(bot.NewInterface(cfg, evaluator, searchCfg))
	botB := bot.New(bot.NewInterface(cfg, evaluator, searchCfg))
	defer botA.Close()
	defer botB.Close()

	var execA, execB *bot.PieceMoveExecutor

	for tick := 0; tick < *maxTicks && !bt.Over(); tick++ {
		ctrlA := stepExecutor(&execA, botA, bt.A.Board)
		ctrlB := stepExecutor(&execB, botB, bt.B.Board)

		update := bt.Tick(ctrlA, ctrlB)
		resyncOnMismatch(&execA, botA, update.A.Events, bt.A.Board)
		resyncOnMismatch(&execB, botB, update.B.Events, bt.B.Board)
	}

	switch {
	case bt.A.IsGameOver() && bt.B.IsGameOver():
		log.Printf("draw after %d ticks (both topped out)", bt.Replay.Len())
	case bt.A.IsGameOver():
		log.Printf("B wins after %d ticks", bt.Replay.Len())
	case bt.B.IsGameOver():
		log.Printf("A wins after %d ticks", bt.Replay.Len())
	default:
		log.Printf("stopped after %d ticks with no winner", bt.Replay.Len())
	}
}

// stepExecutor advances the bot for one player by one tick: if it has no
// move in flight, it requests and polls one; otherwise it issues the next
// queued input.
func stepExecutor(exec **bot.PieceMoveExecutor, b *bot.Bot, board *libtetris.Board) libtetris.Controller {
	if *exec == nil || (*exec).Done() {
		b.Iface.RequestNextMove(0)
		move, _, ok := b.Iface.PollNextMove()
		if !ok {
			return libtetris.Controller(0)
		}
		e := bot.NewPieceMoveExecutor(move)
		*exec = e
	}
	return (*exec).Tick()
}

func resyncOnMismatch(exec **bot.PieceMoveExecutor, b *bot.Bot, events []libtetris.Event, board *libtetris.Board) {
	if *exec == nil {
		return
	}
	if (*exec).Verify(events) && len(board.Queue) > 0 {
		b.Iface.Reset(board, board.Queue[0], board.Hold)
		*exec = nil
	}
}
