// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/minichain/minichain/business/web/errs"
	"github.com/minichain/minichain/foundation/blockchain/database"
	"github.com/minichain/minichain/foundation/blockchain/state"
	"github.com/minichain/minichain/foundation/events"
	"github.com/minichain/minichain/foundation/nameservice"
	"github.com/minichain/minichain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// SubmitTransaction adds a new signed transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app submitTx
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	signedTx, err := toSignedTx(app)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "tx", signedTx)
	if err := h.State.SubmitTransaction(signedTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine signals the worker to mine the current transaction pool into a new
// block. The call returns immediately; mining progress streams over the
// events endpoint.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// SetDifficulty changes the difficulty used for future mining calls.
func (h Handlers) SetDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app setDifficulty
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	if err := h.State.SetDifficulty(app.Difficulty); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Difficulty uint `json:"difficulty"`
	}{
		Difficulty: h.State.Difficulty(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// ValidateChain audits the whole chain and reports the first problem found,
// if any. The audit never halts the node.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid  bool   `json:"valid"`
		Height int    `json:"height"`
		Error  string `json:"error,omitempty"`
	}{
		Valid:  true,
		Height: h.State.Height(),
	}

	if err := h.State.ValidateChain(); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns the blocks on the chain, genesis first.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.State.Blocks()
	if err != nil {
		return err
	}

	out := make([]block, len(blocks))
	for i, b := range blocks {
		out[i] = toBlock(b, h.NS)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// Mempool returns the transactions waiting to be mined, in block order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.Mempool()

	trans := make([]tx, len(pool))
	for i, signedTx := range pool {
		trans[i] = toTx(signedTx, h.NS)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Genesis(), http.StatusOK)
}

// Events handles a web socket to provide mining events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "status", "websocket open")
	defer h.Log.Infow("events", "traceid", v.TraceID, "status", "websocket closed")

	// Each connection gets its own channel, keyed by the request trace id.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Once the connection is upgraded it is hijacked from the web framework,
	// so a failed write here is a client disconnect, not a handler error.
	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// toSignedTx converts the API model into a chain transaction.
func toSignedTx(app submitTx) (database.SignedTx, error) {
	fromID, err := database.ToAccountID(app.From)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("invalid from account: %w", err)
	}

	toID, err := database.ToAccountID(app.To)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("invalid to account: %w", err)
	}

	sig, err := hexutil.Decode(app.Signature)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("invalid signature encoding: %w", err)
	}

	signedTx := database.SignedTx{
		Tx: database.Tx{
			FromID: fromID,
			ToID:   toID,
			Value:  app.Value,
		},
		Signature: sig,
	}

	return signedTx, nil
}
