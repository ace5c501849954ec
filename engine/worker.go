package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cm "checkers-engine/checkersmg"
)

var (
	ErrInvalidBoard = errors.New("engine: invalid board")
	ErrWorkerClosed = errors.New("engine: worker closed")
)

// Request is a plain-data search job: everything the search needs and nothing that
// refers back to a live game.
type Request struct {
	Variant         cm.Variant `json:"variant"`
	Board           cm.Board   `json:"board"`
	Player          cm.Color   `json:"player"`
	Depth           int        `json:"depth"`
	QuiescenceDepth int        `json:"quiescenceDepth"`
	// Seed fixes the tie-break source when non-zero.
	Seed int64 `json:"seed,omitempty"`
}

// Response carries the recommended turn. Found is false when the player has no move.
type Response struct {
	Found    bool          `json:"found"`
	Move     cm.Move       `json:"move"`
	Path     []cm.Position `json:"path,omitempty"`
	Captures int           `json:"captures"`
	Score    float64       `json:"score"`
	Nodes    uint64        `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
}

func (req Request) validate() (cm.Rules, error) {
	rules, err := cm.NewRules(req.Variant)
	if err != nil {
		return nil, err
	}
	if !req.Board.Valid(req.Variant) {
		return nil, fmt.Errorf("%w: overlapping or misplaced pieces", ErrInvalidBoard)
	}
	if req.Player != cm.Red && req.Player != cm.Black {
		return nil, fmt.Errorf("%w: player %d", ErrInvalidBoard, req.Player)
	}
	return rules, nil
}

func run(s *Searcher, req Request) Response {
	res, ok := s.Search(req.Board, req.Player, req.Depth, req.QuiescenceDepth)
	if !ok {
		return Response{Nodes: s.Stats().Total()}
	}
	return Response{
		Found:    true,
		Move:     res.Move,
		Path:     res.Path,
		Captures: res.Captures,
		Score:    res.Score,
		Nodes:    res.Stats.Total(),
		Elapsed:  res.Elapsed,
	}
}

func searcherFor(rules cm.Rules, req Request, opts []Option) *Searcher {
	if req.Seed != 0 {
		opts = append(opts[:len(opts):len(opts)], WithSeed(req.Seed))
	}
	return NewSearcher(rules, opts...)
}

// Recommend runs one search on its own goroutine. The board is passed by value, so the
// caller may keep mutating its copy. When ctx ends first the result is discarded; the
// search itself runs to completion.
func Recommend(ctx context.Context, req Request, opts ...Option) (Response, error) {
	rules, err := req.validate()
	if err != nil {
		return Response{}, err
	}
	done := make(chan Response, 1)
	go func() {
		done <- run(searcherFor(rules, req, opts), req)
	}()
	select {
	case resp := <-done:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

type job struct {
	req   Request
	rules cm.Rules
	reply chan Response
}

// Worker owns a single background goroutine and runs at most one search at a time.
// Jobs queue in submission order.
type Worker struct {
	opts []Option
	jobs chan job
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWorker starts the worker goroutine. opts apply to every searcher it builds.
func NewWorker(opts ...Option) *Worker {
	w := &Worker{
		opts: opts,
		jobs: make(chan job),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case j := <-w.jobs:
			j.reply <- run(searcherFor(j.rules, j.req, w.opts), j.req)
		case <-w.quit:
			return
		}
	}
}

// Submit queues req and waits for its response or for ctx to end.
func (w *Worker) Submit(ctx context.Context, req Request) (Response, error) {
	rules, err := req.validate()
	if err != nil {
		return Response{}, err
	}
	j := job{req: req, rules: rules, reply: make(chan Response, 1)}
	select {
	case w.jobs <- j:
	case <-w.quit:
		return Response{}, ErrWorkerClosed
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	select {
	case resp := <-j.reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Close stops the worker after the running search, if any, has finished.
func (w *Worker) Close() {
	w.once.Do(func() { close(w.quit) })
	<-w.done
}
