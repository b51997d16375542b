// Package viewer drives interactive rendering for the window front end: a
// background render worker and key translation shared with the terminal UI.
package viewer

import (
	"context"

	"github.com/litescript/ls-orbitals/internal/logging"
	"github.com/litescript/ls-orbitals/internal/render"
	"github.com/litescript/ls-orbitals/internal/state"
)

// Result is a finished render.
type Result struct {
	Request state.RenderRequest
	Buf     *render.PixelBuffer
	Err     error
}

// Worker renders requests on its own goroutine. Both the request and the
// result queue hold a single element; a newer value replaces an older one.
type Worker struct {
	requests chan state.RenderRequest
	results  chan Result
	logger   *logging.Logger
}

// NewWorker creates an idle worker. Call Run to start it.
func NewWorker(logger *logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Worker{
		requests: make(chan state.RenderRequest, 1),
		results:  make(chan Result, 1),
		logger:   logger.Named("worker"),
	}
}

// Run renders submitted requests until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("render worker shutting down")
			return
		case req := <-w.requests:
			buf, err := render.Render(req.Key)
			if err != nil {
				w.logger.Warn("render %s failed: %v", req.ID, err)
			}
			offer(w.results, Result{Request: req, Buf: buf, Err: err})
		}
	}
}

// Submit queues req, dropping any request the worker has not picked up yet.
func (w *Worker) Submit(req state.RenderRequest) {
	offer(w.requests, req)
}

// Results delivers finished renders.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Sync hands finished renders to mgr and, when no render is in flight,
// submits a new request if the state changed. It never blocks and reports
// whether a new frame was accepted.
func (w *Worker) Sync(mgr *state.Manager) bool {
	accepted := false
drain:
	for {
		select {
		case res := <-w.results:
			if mgr.CompleteRender(res.Request.ID, res.Buf, res.Err) && res.Err == nil {
				accepted = true
			}
		default:
			break drain
		}
	}

	// Changes made while a render runs are picked up when it finishes.
	if mgr.Rendering() {
		return accepted
	}
	if req, ok := mgr.BeginRender(); ok {
		w.Submit(req)
	}
	return accepted
}

// Tick applies the keys pressed during one frame and then syncs with mgr.
// quit is set when a quit key was pressed or ctx is done; nothing is
// applied in that case.
func (w *Worker) Tick(ctx context.Context, mgr *state.Manager, names []string) (fresh, quit bool) {
	if ctx.Err() != nil {
		return false, true
	}
	actions, quit := Translate(names)
	if quit {
		return false, true
	}
	for _, a := range actions {
		mgr.Apply(a)
	}
	return w.Sync(mgr), false
}

// offer sends v on a one-element channel, replacing a queued value.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
