// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/minichain/minichain/foundation/blockchain/database"
	"github.com/minichain/minichain/foundation/blockchain/genesis"
	"github.com/minichain/minichain/foundation/blockchain/mempool"
)

// =============================================================================

// EventHandler defines a function that is called when events occur in the
// processing of mining and validating blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining() (done func())
}

// =============================================================================

// Config represents the configuration required to start the chain.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the blockchain. It owns the ordered block sequence, the
// current difficulty, and the pool of pending transactions. The block
// sequence and difficulty run under the state mutex; the mempool carries its
// own lock, so transactions keep flowing in while a mining call holds the
// state mutex.
type State struct {
	mu sync.RWMutex

	genesis    genesis.Genesis
	difficulty uint
	blocks     []database.Block
	mempool    *mempool.Mempool
	evHandler  EventHandler

	Worker Worker
}

// New constructs a new chain holding only the genesis block.
func New(cfg Config) (*State, error) {
	if cfg.Genesis.Difficulty == 0 || cfg.Genesis.Difficulty > database.MaxDifficulty {
		return nil, database.ErrInvalidDifficulty
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	state := State{
		genesis:    cfg.Genesis,
		difficulty: cfg.Genesis.Difficulty,
		blocks:     []database.Block{database.NewGenesisBlock()},
		mempool:    mempool.New(),
		evHandler:  ev,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the chain down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// SubmitTransaction accepts a signed transaction into the pending pool after
// validating it. Reward transactions are enqueued internally by mining and
// cannot be submitted from the outside. Submissions that land while a block
// is being mined are kept for the next block.
func (s *State) SubmitTransaction(signedTx database.SignedTx) error {
	if signedTx.IsReward() {
		return fmt.Errorf("%w: reward transactions cannot be submitted", database.ErrInvalidTransaction)
	}

	if !signedTx.FromID.IsAccountID() || !signedTx.ToID.IsAccountID() {
		return fmt.Errorf("%w: invalid from or to account", database.ErrInvalidTransaction)
	}

	if signedTx.Value == 0 {
		return database.ErrInvalidAmount
	}

	if err := signedTx.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrInvalidTransaction, err)
	}

	s.mempool.Append(signedTx)
	s.evHandler("state: SubmitTransaction: tx[%s] added to mempool", signedTx)

	return nil
}

// SetDifficulty changes the difficulty used for future mining calls. Blocks
// already on the chain are never re-validated against the new value. The
// difficulty must be in the range 1 through database.MaxDifficulty or no
// hash could ever satisfy it.
func (s *State) SetDifficulty(difficulty uint) error {
	if difficulty == 0 || difficulty > database.MaxDifficulty {
		return database.ErrInvalidDifficulty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SetDifficulty: difficulty[%d]", difficulty)
	s.difficulty = difficulty

	return nil
}

// Difficulty returns the difficulty the next mining call will use.
func (s *State) Difficulty() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.difficulty
}

// =============================================================================

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// LatestBlock returns a copy of the current latest block.
func (s *State) LatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blocks[len(s.blocks)-1]
}

// Height returns the number of blocks on the chain, genesis included.
func (s *State) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blocks)
}

// Blocks returns a deep copy of the block sequence, so callers can inspect
// the chain without being able to corrupt it.
func (s *State) Blocks() ([]database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blocks []database.Block
	if err := copier.CopyWithOption(&blocks, s.blocks, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}

	return blocks, nil
}

// Mempool returns the transactions waiting to be mined, in the order they
// will appear inside the next block.
func (s *State) Mempool() []database.SignedTx {
	return s.mempool.Copy()
}
