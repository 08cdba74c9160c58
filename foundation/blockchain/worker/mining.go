package worker

import (
	"context"
	"errors"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation mines the current transaction pool into a new block.
func (w *Worker) runMiningOperation() {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	// Drain any stale cancel signal before starting.
	select {
	case wait := <-w.cancelMining:
		w.evHandler("worker: runMiningOperation: MINING: drained cancel channel")
		<-wait
	default:
	}

	// Create a context so mining can be cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// If a cancel comes in while mining, cancel the context and hold the
	// goroutine until the canceller reports it is done with its own work.
	finished := make(chan struct{})
	defer close(finished)

	go func() {
		select {
		case wait := <-w.cancelMining:
			w.evHandler("worker: runMiningOperation: MINING: cancel signal received")
			cancel()
			<-wait
		case <-finished:
		}
	}()

	block, err := w.state.MineTransactionPool(ctx, w.minerID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			w.evHandler("worker: runMiningOperation: MINING: CANCELLED")
			return
		}
		w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: mined block[%s]", block.Hash)
}
