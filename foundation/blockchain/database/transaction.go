package database

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"

	"github.com/minichain/minichain/foundation/blockchain/signature"
)

// =============================================================================

// Tx is the transactional information between two parties. Only these three
// fields participate in the transaction hash, so the hash is exactly what
// gets signed.
type Tx struct {
	FromID AccountID `json:"from"`  // Account sending the money. Empty for a mining reward.
	ToID   AccountID `json:"to"`    // Account receiving the money.
	Value  uint64    `json:"value"` // Amount being transferred.
}

// NewTx constructs a new unsigned transaction between two accounts.
func NewTx(fromID AccountID, toID AccountID, value uint64) (Tx, error) {
	if !fromID.IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}

	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	if value == 0 {
		return Tx{}, ErrInvalidAmount
	}

	tx := Tx{
		FromID: fromID,
		ToID:   toID,
		Value:  value,
	}

	return tx, nil
}

// Hash returns a unique string for the transaction over its from, to, and
// value fields only. Calling it twice on an unmodified transaction yields
// identical output.
func (tx Tx) Hash() string {
	return signature.Hash(tx)
}

// IsReward reports whether this transaction credits a mining reward. Reward
// transactions have no payer and are exempt from signature checks.
func (tx Tx) IsReward() bool {
	return tx.FromID == RewardAccountID
}

// Sign uses the specified private key to sign the transaction. The derived
// public key must match the from account or the signing is rejected, so
// nobody can sign on behalf of another party.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {
	if accountID := PublicKeyToAccountID(privateKey.PublicKey); accountID != tx.FromID {
		return SignedTx{}, fmt.Errorf("%w: key belongs to %s", ErrInvalidSigner, accountID)
	}

	sig, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, err
	}

	signedTx := SignedTx{
		Tx:        tx,
		Signature: sig,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how transactions
// are recorded in the mempool and inside blocks. The value is immutable by
// convention: changing any field after signing makes Validate fail, since
// the signature no longer matches the recomputed hash.
type SignedTx struct {
	Tx
	Signature []byte `json:"signature,omitempty"`
}

// NewRewardTx constructs the transaction that credits a miner with the
// mining reward. It carries the sentinel from account and no signature.
func NewRewardTx(minerID AccountID, reward uint64) SignedTx {
	return SignedTx{
		Tx: Tx{
			FromID: RewardAccountID,
			ToID:   minerID,
			Value:  reward,
		},
	}
}

// Validate verifies the transaction carries a proper signature over its
// current hash. Reward transactions validate unconditionally.
func (tx SignedTx) Validate() error {
	if tx.IsReward() {
		return nil
	}

	if len(tx.Signature) == 0 {
		return ErrMissingSignature
	}

	if err := signature.Verify(tx.Tx, string(tx.FromID), tx.Signature); err != nil {
		return err
	}

	return nil
}

// Equals reports whether two transactions are the same transaction. The
// signature is the identity for signed transactions, and the hashed fields
// settle it for unsigned reward transactions.
func (tx SignedTx) Equals(otherTx SignedTx) bool {
	return tx.Tx == otherTx.Tx && bytes.Equal(tx.Signature, otherTx.Signature)
}

// SignatureString returns the signature as a string for display.
func (tx SignedTx) SignatureString() string {
	return signature.SignatureString(tx.Signature)
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	from := string(tx.FromID)
	if tx.IsReward() {
		from = "reward"
	}

	return fmt.Sprintf("%s:%s:%d", from, tx.ToID, tx.Value)
}
