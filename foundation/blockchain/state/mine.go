package state

import (
	"context"

	"github.com/minichain/minichain/foundation/blockchain/database"
)

// MineTransactionPool packages the pool's current contents into a new block,
// performs the proof of work, and appends the block to the chain. The mined
// transactions are removed from the pool and a new reward transaction
// crediting the miner is enqueued. Crediting the reward into the next pool
// rather than the mined block is deliberate: the miner collects when the
// following block is mined.
//
// The state lock is held for the duration of the mining search. The mempool
// carries its own lock, so SubmitTransaction keeps accepting transactions
// while the search runs; those stay pending for the next block. Cancel
// through the context if the search must stop early.
func (s *State) MineTransactionPool(ctx context.Context, minerID database.AccountID) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.blocks) == 0 {
		return database.Block{}, database.ErrEmptyChain
	}

	s.evHandler("state: MineTransactionPool: MINING: trans[%d] difficulty[%d]", s.mempool.Count(), s.difficulty)

	// Package the pool, including any reward transaction already enqueued
	// by the previous mining call, and link to the current latest block.
	latestBlock := s.blocks[len(s.blocks)-1]
	block := database.NewBlock(s.mempool.Copy(), latestBlock.Hash)

	// Perform the proof of work mining operation. This can be cancelled.
	if err := block.Mine(ctx, s.difficulty, s.evHandler); err != nil {
		return database.Block{}, err
	}

	// The block is either fully mined and appended, or not appended at all.
	s.blocks = append(s.blocks, block)

	// Remove only the transactions that made it into the block. Anything
	// accepted while the search was running stays pending for the next
	// block. Then credit the miner into the next pool.
	for _, tx := range block.Trans {
		s.mempool.Delete(tx)
	}
	s.mempool.Append(database.NewRewardTx(minerID, s.genesis.MiningReward))

	s.evHandler("state: MineTransactionPool: MINING: block[%s] appended: height[%d]", block.Hash, len(s.blocks))

	return block, nil
}
