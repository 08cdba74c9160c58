package database

import "errors"

// Set of errors the blockchain can return. These are checked with errors.Is
// so callers can react to the specific failure.
var (
	// ErrInvalidSigner is returned when a private key is used to sign a
	// transaction on behalf of an account it does not own.
	ErrInvalidSigner = errors.New("signing key does not match the from account")

	// ErrMissingSignature is returned when a non reward transaction is
	// validated before it has been signed.
	ErrMissingSignature = errors.New("transaction has no signature")

	// ErrInvalidAmount is returned when a transfer carries no value.
	ErrInvalidAmount = errors.New("transaction value must be greater than zero")

	// ErrInvalidTransaction is returned when a transaction fails validation
	// on its way into the mempool or inside a block.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrChainLink is returned when a block's previous hash does not match
	// the hash of the block before it.
	ErrChainLink = errors.New("block is not linked to the previous block")

	// ErrBlockTamper is returned when a block's recomputed hash does not
	// match the hash cached at mining time.
	ErrBlockTamper = errors.New("block hash does not match its contents")

	// ErrInvalidDifficulty is returned when the mining difficulty is set
	// outside the range a block hash can satisfy.
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 32")

	// ErrEmptyChain is returned when mining is requested before the genesis
	// block exists.
	ErrEmptyChain = errors.New("chain has no genesis block")
)
