package database

import (
	"context"
	"fmt"
	"time"

	"github.com/minichain/minichain/foundation/blockchain/signature"
)

// =============================================================================

// MaxDifficulty is the largest number of leading hexadecimal zeros a mining
// call can be asked for. It matches the zero run isHashSolved compares
// against; anything above it could never be satisfied and would spin the
// nonce search forever.
const MaxDifficulty = 32

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was constructed, in Unix milliseconds.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together. The order of
// the transactions is significant and part of the hash. The mined hash is
// cached on the block, separate from what ComputeHash derives, so tampering
// with any field is detectable by recomputation.
type Block struct {
	Header BlockHeader `json:"header"`
	Trans  []SignedTx  `json:"trans"`
	Hash   string      `json:"hash"`
}

// NewBlock constructs a block from the specified transactions, linked to the
// previous block by its hash. The block starts with a zero nonce and its
// hash cached from the initial contents; Mine updates both.
func NewBlock(trans []SignedTx, prevBlockHash string) Block {
	b := Block{
		Header: BlockHeader{
			PrevBlockHash: prevBlockHash,
			TimeStamp:     uint64(time.Now().UTC().UnixMilli()),
		},
		Trans: trans,
	}
	b.Hash = b.ComputeHash()

	return b
}

// NewGenesisBlock constructs the first block of a chain. It carries no
// transactions and the zero hash as its parent, and is never mined.
func NewGenesisBlock() Block {
	return NewBlock(nil, signature.ZeroHash)
}

// ComputeHash derives the hash for the block over its ordered transaction
// list, timestamp, previous block hash, and nonce. The cached Hash field is
// excluded, so a fresh computation can be compared against it.
func (b Block) ComputeHash() string {
	data := struct {
		Trans         []SignedTx `json:"trans"`
		TimeStamp     uint64     `json:"timestamp"`
		PrevBlockHash string     `json:"prev_block_hash"`
		Nonce         uint64     `json:"nonce"`
	}{
		Trans:         b.Trans,
		TimeStamp:     b.Header.TimeStamp,
		PrevBlockHash: b.Header.PrevBlockHash,
		Nonce:         b.Header.Nonce,
	}

	return signature.Hash(data)
}

// Mine performs the proof of work search: the nonce is incremented until the
// block hash carries difficulty leading hexadecimal zeros. The search is
// unbounded; the context is the only way to stop it early, and cancellation
// does not alter the hash/nonce contract. Pointer semantics are being used
// since a nonce is being discovered.
func (b *Block) Mine(ctx context.Context, difficulty uint, ev func(v string, args ...any)) error {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	ev("database: Mine: MINING: started: difficulty[%d]", difficulty)
	defer ev("database: Mine: MINING: completed")

	// Refuse to burn cycles on a block carrying tampered transactions.
	if err := b.ValidateTransactions(); err != nil {
		return err
	}

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED")
			return ctx.Err()
		}

		hash := b.ComputeHash()
		if !isHashSolved(difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		b.Hash = hash
		ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: Mine: MINING: attempts[%d]", attempts)

		return nil
	}
}

// ValidateTransactions checks every transaction in the block, reporting the
// index of the first one that fails.
func (b Block) ValidateTransactions() error {
	for i, tx := range b.Trans {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%w: index %d: %v", ErrInvalidTransaction, i, err)
		}
	}

	return nil
}

// ValidateBlock checks the block is properly linked to the specified parent
// and has not been tampered with since it was mined. The proof of work
// difficulty is not re-checked here: a block mined under a lower historical
// difficulty remains valid after the difficulty is raised.
func (b Block) ValidateBlock(previousBlock Block) error {
	if b.Header.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrChainLink, b.Header.PrevBlockHash, previousBlock.Hash)
	}

	if hash := b.ComputeHash(); hash != b.Hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrBlockTamper, hash, b.Hash)
	}

	if err := b.ValidateTransactions(); err != nil {
		return err
	}

	return nil
}

// =============================================================================

// isHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "00000000000000000000000000000000"

	if len(hash) != 66 || difficulty > MaxDifficulty {
		return false
	}

	return hash[2:2+difficulty] == match[:difficulty]
}
