package state

import (
	"fmt"

	"github.com/minichain/minichain/foundation/blockchain/database"
)

// ValidateChain audits the whole chain: every block must be linked to its
// parent by hash, must hash to the value cached when it was mined, and must
// carry only valid transactions. A nil return means the chain is intact.
//
// The proof of work difficulty is deliberately not re-checked: the
// difficulty can be raised over time and blocks mined under a lower
// historical value remain valid.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 {
		return database.ErrEmptyChain
	}

	s.evHandler("state: ValidateChain: height[%d]", len(s.blocks))

	// The genesis block has no parent but its contents are still checked
	// against its cached hash.
	if hash := s.blocks[0].ComputeHash(); hash != s.blocks[0].Hash {
		return fmt.Errorf("genesis block: %w", database.ErrBlockTamper)
	}

	for i := 1; i < len(s.blocks); i++ {
		if err := s.blocks[i].ValidateBlock(s.blocks[i-1]); err != nil {
			return fmt.Errorf("block[%d]: %w", i, err)
		}
	}

	return nil
}
