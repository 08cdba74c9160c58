// Package mempool maintains the pool of transactions waiting to be mined
// into a block. Unlike a production mempool there is no selection strategy:
// insertion order is significant, becomes the transaction order inside the
// next block, and is part of that block's hash.
package mempool

import (
	"sync"

	"github.com/minichain/minichain/foundation/blockchain/database"
)

// Mempool represents an ordered cache of transactions.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.SignedTx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool.
func (mp *Mempool) Append(tx database.SignedTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
}

// Delete removes the first transaction in the pool matching the specified
// transaction, preserving the order of the rest.
func (mp *Mempool) Delete(tx database.SignedTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i, poolTx := range mp.pool {
		if poolTx.Equals(tx) {
			mp.pool = append(mp.pool[:i], mp.pool[i+1:]...)
			return
		}
	}
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns the transactions in the pool in insertion order.
func (mp *Mempool) Copy() []database.SignedTx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.SignedTx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}
