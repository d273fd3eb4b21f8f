package bot

import (
	"context"
	"sync"
	"time"

	"github.com/coldclear/core/eval"
	"github.com/coldclear/core/libtetris"
	"github.com/coldclear/core/search"
)

type resetCmd struct {
	board   *libtetris.Board
	current libtetris.Piece
	hold    *libtetris.Piece
}

type moveRequest struct{ incoming uint32 }

type moveResult struct {
	move Move
	info Info
	ok   bool
}

// Interface is the asynchronous boundary between a game loop and the
// search: game-side calls (AddNextPiece, RequestNextMove, Reset) are a
// bounded many-producer-to-one-consumer queue into the bot goroutine, and
// PollNextMove drains a one-producer-to-many-consumer queue of completed
// moves out of it.
type Interface struct {
	nextPieces chan libtetris.Piece
	requests   chan moveRequest
	resets     chan resetCmd
	moves      chan moveResult
	done       chan struct{}

	gameConfig libtetris.GameConfig
	evaluator  eval.Evaluator
	searchCfg  search.Config

	wg sync.WaitGroup
}

// NewInterface starts the bot's background goroutine, ready to accept
// Reset followed by piece/move traffic.
func NewInterface(gameConfig libtetris.GameConfig, evaluator eval.Evaluator, searchCfg search.Config) *Interface {
	iface := &Interface{
		nextPieces: make(chan libtetris.Piece, 64),
		requests:   make(chan moveRequest, 16),
		resets:     make(chan resetCmd, 4),
		moves:      make(chan moveResult, 16),
		done:       make(chan struct{}),
		gameConfig: gameConfig,
		evaluator:  evaluator,
		searchCfg:  searchCfg,
	}
	iface.wg.Add(1)
	go iface.run()
	return iface
}

// AddNextPiece informs the bot of a newly revealed queue piece.
func (i *Interface) AddNextPiece(p libtetris.Piece) {
	select {
	case i.nextPieces <- p:
	case <-i.done:
	}
}

// RequestNextMove asks the bot to search and produce its best move for the
// current state, given incoming garbage already known about.
func (i *Interface) RequestNextMove(incoming uint32) {
	select {
	case i.requests <- moveRequest{incoming: incoming}:
	case <-i.done:
	}
}

// Reset replaces the bot's mirrored board/piece/hold state, discarding any
// in-progress search (used after garbage lands or a mismatch is detected).
func (i *Interface) Reset(board *libtetris.Board, current libtetris.Piece, hold *libtetris.Piece) {
	select {
	case i.resets <- resetCmd{board: board.Clone(), current: current, hold: hold}:
	case <-i.done:
	}
}

// PollNextMove returns the next completed move, if one is ready.
func (i *Interface) PollNextMove() (Move, Info, bool) {
	select {
	case r := <-i.moves:
		return r.move, r.info, r.ok
	default:
		return Move{}, Info{}, false
	}
}

// Close stops the bot goroutine and waits for it to exit.
func (i *Interface) Close() {
	close(i.done)
	i.wg.Wait()
}

func (i *Interface) run() {
	defer i.wg.Done()

	var board *libtetris.Board
	var current libtetris.Piece
	var hold *libtetris.Piece
	var haveState bool

	for {
		select {
		case <-i.done:
			return
		case r := <-i.resets:
			board, current, hold = r.board, r.current, r.hold
			haveState = true
		case p := <-i.nextPieces:
			if haveState {
				board.Queue = append(board.Queue, p)
			}
		case req := <-i.requests:
			if !haveState {
				i.moves <- moveResult{ok: false}
				continue
			}
			move, info, ok := i.search(board, current, hold, req.incoming)
			select {
			case i.moves <- moveResult{move: move, info: info, ok: ok}:
			case <-i.done:
				return
			}
		}
	}
}

func (i *Interface) search(board *libtetris.Board, current libtetris.Piece, hold *libtetris.Piece, incoming uint32) (Move, Info, bool) {
	s := search.New(board, current, hold, i.gameConfig, i.evaluator, i.searchCfg)
	ctx, cancel := context.WithTimeout(context.Background(), timeoutOr(i.searchCfg))
	defer cancel()
	s.Run(ctx)

	placement, value, ok := s.BestPlacement(incoming)
	if !ok {
		return Move{}, Info{}, false
	}
	return moveFromPlacement(placement), Info{Nodes: s.NodeCount(), Value: value}, true
}

func timeoutOr(cfg search.Config) time.Duration {
	if cfg.Timeout <= 0 {
		return 100 * time.Millisecond
	}
	return cfg.Timeout
}
